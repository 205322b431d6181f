package cli

import (
	"github.com/spf13/cobra"

	"github.com/i474232898/weather-dashboard/internal/units"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

func printNotification(cmd *cobra.Command, service *weather.Service) {
	if n, ok := service.State().LastNotification(); ok {
		cmd.Printf("[%s] %s\n", n.Kind, n.Message)
	}
}

func printRecord(cmd *cobra.Command, rec weather.WeatherRecord, u units.Unit) {
	cmd.Printf("LOCATION\t %s %s\n", rec.City, rec.Country)
	cmd.Printf("TEMP\t\t %s\n", units.FormatTemp(&rec.TemperatureC, u))
	if rec.HumidityPercent != nil {
		cmd.Printf("HUMIDITY\t %d%%\n", *rec.HumidityPercent)
	}
	if rec.WindKmh != nil {
		cmd.Printf("WIND\t\t %v km/h\n", *rec.WindKmh)
	}
	cmd.Printf("OBSERVED\t %s\n", rec.ObservedAt().Format("2006-01-02 15:04"))
}

func printRecords(cmd *cobra.Command, recs []weather.WeatherRecord, u units.Unit) {
	if len(recs) == 0 {
		cmd.Println("nothing here yet")
		return
	}
	for _, r := range recs {
		cmd.Printf("%-24s %-4s %8s\n", r.City, r.Country, units.FormatTemp(&r.TemperatureC, u))
	}
}

func printCandidates(cmd *cobra.Command, cands []weather.Candidate) {
	for i, c := range cands {
		cmd.Printf("%2d. %-24s %-20s %-4s %s\n", i+1, c.Name, c.State, c.Country, c.Coordinate)
	}
}

func printHourly(cmd *cobra.Command, rows []weather.ForecastSample, u units.Unit) {
	cmd.Printf("%-19s %8s %5s %6s %5s\n", "TIME", "TEMP", "HUM", "WIND", "RAIN")
	for _, r := range rows {
		hum := "-"
		if r.HumidityPercent != nil {
			hum = units.FormatPercent(*r.HumidityPercent)
		}
		cmd.Printf("%-19s %8s %5s %6s %5s\n", r.Time, units.FormatTemp(r.TemperatureC, u), hum, units.FormatValue(r.WindKmh), units.FormatValue(r.Rain3hMm))
	}
}

func printDaily(cmd *cobra.Command, rows []weather.DailyAggregate, u units.Unit) {
	cmd.Printf("%-10s %8s %8s %6s\n", "DATE", "MIN", "MAX", "PRECIP")
	for _, r := range rows {
		cmd.Printf("%-10s %8s %8s %4dmm\n", r.Date, units.FormatTemp(r.MinC, u), units.FormatTemp(r.MaxC, u), r.PrecipitationMm)
	}
}
