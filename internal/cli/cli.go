package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/units"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ServeFunc runs the HTTP dashboard until ctx is cancelled.
type ServeFunc func(ctx context.Context) error

// New builds the root command. serve may be nil, in which case the serve
// command is not registered.
func New(service *weather.Service, serve ServeFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "weather-dashboard",
		Short:         "Current weather, forecasts and saved places",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("unit", "", "display unit for this run (celsius or fahrenheit)")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		u, _ := cmd.Flags().GetString("unit")
		if u == "" {
			return nil
		}
		return service.SetUnit(units.Unit(u))
	}

	if serve != nil {
		root.AddCommand(&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP dashboard API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context())
			},
		})
	}

	root.AddCommand(
		searchCmd(service),
		coordsCmd(service),
		locateCmd(service),
		forecastCmd(service),
		historyCmd(service),
		savedCmd(service),
		themeCmd(service),
	)
	return root
}

func searchCmd(service *weather.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "search <place>",
		Short: "Search a place by name and show its weather",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := service.SearchByText(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return userError(service, err)
			}
			if res.Ambiguous {
				printNotification(cmd, service)
				printCandidates(cmd, res.Candidates)
				return nil
			}
			printRecord(cmd, *res.Record, service.State().Unit())
			return nil
		},
	}
}

func coordsCmd(service *weather.Service) *cobra.Command {
	var name, country string
	cmd := &cobra.Command{
		Use:   "coords <lat> <lon>",
		Short: "Show the weather at a coordinate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := parseCoordinate(args[0], args[1])
			if err != nil {
				return err
			}
			var hint *weather.PlaceLabel
			if name != "" {
				hint = &weather.PlaceLabel{Name: name, CountryCode: country}
			}
			rec, err := service.FetchByCoordinates(cmd.Context(), coord, hint)
			if err != nil {
				return userError(service, err)
			}
			printRecord(cmd, rec, service.State().Unit())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "label to use instead of reverse geocoding")
	cmd.Flags().StringVar(&country, "country", "", "country code for --name")
	return cmd
}

func locateCmd(service *weather.Service) *cobra.Command {
	var lat, lon, accuracy float64
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Locate this machine (or use --lat/--lon) and show its weather",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var loc weather.Locator
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
				if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
					return errors.New("--lat and --lon must be given together")
				}
				fix := weather.Position{Coordinate: geo.Coordinate{Latitude: lat, Longitude: lon}}
				if cmd.Flags().Changed("accuracy") {
					fix.AccuracyMeters = &accuracy
				}
				loc = weather.StaticLocator{Fix: fix}
			}

			res, err := service.LocateAndFetch(cmd.Context(), loc)
			if err != nil {
				return userError(service, err)
			}
			if res.Warning != "" {
				cmd.Printf("NOTE\t\t %s\n", res.Warning)
			}
			printRecord(cmd, res.Record, service.State().Unit())
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of a known fix")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude of a known fix")
	cmd.Flags().Float64Var(&accuracy, "accuracy", 0, "accuracy radius of the fix in meters")
	return cmd
}

func forecastCmd(service *weather.Service) *cobra.Command {
	var daily bool
	cmd := &cobra.Command{
		Use:   "forecast <place>",
		Short: "Show the hourly (or --daily) forecast for a place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := service.SearchByText(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return userError(service, err)
			}
			if res.Ambiguous {
				printNotification(cmd, service)
				printCandidates(cmd, res.Candidates)
				return nil
			}
			service.Wait()

			snap := service.State().Snapshot()
			cmd.Printf("LOCATION\t %s %s\n", res.Record.City, res.Record.Country)
			if daily {
				printDaily(cmd, snap.Daily, snap.Unit)
			} else {
				printHourly(cmd, snap.Hourly, snap.Unit)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&daily, "daily", false, "show per-day summaries")
	return cmd
}

func historyCmd(service *weather.Service) *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List (or --clear) recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clearAll {
				service.ClearHistory()
				cmd.Println("history cleared")
				return nil
			}
			printRecords(cmd, service.State().History(), service.State().Unit())
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove all history entries")
	return cmd
}

func savedCmd(service *weather.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "List saved places",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printRecords(cmd, service.State().Saved(), service.State().Unit())
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <place>",
		Short: "Look a place up and save it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := service.SearchByText(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return userError(service, err)
			}
			if res.Ambiguous {
				printNotification(cmd, service)
				printCandidates(cmd, res.Candidates)
				return nil
			}
			if _, err := service.SaveCurrent(); err != nil {
				return err
			}
			printNotification(cmd, service)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <city> [country]",
		Short: "Remove a saved place",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			country := ""
			if len(args) == 2 {
				country = args[1]
			}
			if !service.RemoveSaved(args[0], country) {
				cmd.Printf("%s was not saved\n", args[0])
				return nil
			}
			printNotification(cmd, service)
			return nil
		},
	})
	return cmd
}

func themeCmd(service *weather.Service) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the dashboard theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(weather.ThemeLight), string(weather.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Println(service.State().Theme())
				return nil
			}
			if err := service.SetTheme(weather.Theme(args[0])); err != nil {
				return err
			}
			printNotification(cmd, service)
			return nil
		},
	}
}

func parseCoordinate(latArg, lonArg string) (geo.Coordinate, error) {
	lat, err := strconv.ParseFloat(latArg, 64)
	if err != nil || lat < -90 || lat > 90 {
		return geo.Coordinate{}, errors.New("latitude must be a number between -90 and 90")
	}
	lon, err := strconv.ParseFloat(lonArg, 64)
	if err != nil || lon < -180 || lon > 180 {
		return geo.Coordinate{}, errors.New("longitude must be a number between -180 and 180")
	}
	return geo.Coordinate{Latitude: lat, Longitude: lon}, nil
}

// userError replaces err with the message the user was notified with.
func userError(service *weather.Service, err error) error {
	if n, ok := service.State().LastNotification(); ok && n.Kind == weather.KindError {
		return errors.New(n.Message)
	}
	return err
}
