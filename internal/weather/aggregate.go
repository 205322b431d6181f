package weather

import "github.com/i474232898/weather-dashboard/internal/units"

// AggregateForecast reduces a raw forecast series into the hourly projection
// and per-date summaries. Daily entries keep the order in which each date
// first appears in the input; they are not sorted. Samples whose timestamp
// has no date part are left out of the daily view.
func AggregateForecast(samples []ForecastSample) ForecastView {
	view := ForecastView{
		Hourly: make([]ForecastSample, 0, len(samples)),
		Daily:  []DailyAggregate{},
	}

	type dayAcc struct {
		min, max *float64
		precip   float64
	}

	var (
		order []string
		days  = make(map[string]*dayAcc)
	)

	for _, s := range samples {
		view.Hourly = append(view.Hourly, ForecastSample{
			Time:            s.Time,
			TemperatureC:    round1Ptr(s.TemperatureC),
			HumidityPercent: s.HumidityPercent,
			WindKmh:         round1Ptr(s.WindKmh),
			Rain3hMm:        round1Ptr(s.Rain3hMm),
		})

		if len(s.Time) < 10 {
			continue
		}
		date := s.Time[:10]

		rain := 0.0
		if s.Rain3hMm != nil {
			rain = *s.Rain3hMm
		}

		acc, ok := days[date]
		if !ok {
			days[date] = &dayAcc{min: s.TemperatureC, max: s.TemperatureC, precip: rain}
			order = append(order, date)
			continue
		}
		t := s.TemperatureC
		if acc.min == nil || (t != nil && *t < *acc.min) {
			acc.min = t
		}
		if acc.max == nil || (t != nil && *t > *acc.max) {
			acc.max = t
		}
		acc.precip += rain
	}

	for _, date := range order {
		acc := days[date]
		view.Daily = append(view.Daily, DailyAggregate{
			Date:            date,
			MinC:            round1Ptr(acc.min),
			MaxC:            round1Ptr(acc.max),
			PrecipitationMm: int(units.RoundHalfUp(acc.precip)),
		})
	}

	return view
}

func round1Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := units.Round1(*v)
	return &r
}
