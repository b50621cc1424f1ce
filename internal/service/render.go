package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/simpleweather/backend/internal/domain"
	"github.com/simpleweather/backend/pkg/utils"
)

// UpdatedLayout mirrors the default medium date-time style, e.g. "Oct 26, 2015 3:04:05 PM"
const UpdatedLayout = "Jan 2, 2006 3:04:05 PM"

// FahrenheitSuffix is appended to the temperature as-is; no unit
// conversion happens, whatever units the API answered in.
const FahrenheitSuffix = " °F"

// Render turns a weather response into a display model. It either returns
// a complete model or an error wrapping domain.ErrMalformedResponse.
func Render(resp *domain.WeatherResponse, now time.Time, loc *time.Location) (domain.DisplayModel, error) {
	if resp == nil {
		return domain.DisplayModel{}, malformed("response")
	}
	if loc == nil {
		loc = time.Local
	}

	if resp.Name == nil {
		return domain.DisplayModel{}, malformed("name")
	}
	sys := resp.Sys
	if sys == nil {
		return domain.DisplayModel{}, malformed("sys")
	}
	if sys.Country == nil {
		return domain.DisplayModel{}, malformed("sys.country")
	}
	if len(resp.Weather) == 0 {
		return domain.DisplayModel{}, malformed("weather[0]")
	}
	cond := resp.Weather[0]
	if cond.Description == nil {
		return domain.DisplayModel{}, malformed("weather[0].description")
	}
	mb := resp.Main
	if mb == nil {
		return domain.DisplayModel{}, malformed("main")
	}
	if mb.Humidity == nil {
		return domain.DisplayModel{}, malformed("main.humidity")
	}
	if mb.Pressure == nil {
		return domain.DisplayModel{}, malformed("main.pressure")
	}
	if mb.Temp == nil {
		return domain.DisplayModel{}, malformed("main.temp")
	}
	if resp.Dt == nil {
		return domain.DisplayModel{}, malformed("dt")
	}
	if cond.ID == nil {
		return domain.DisplayModel{}, malformed("weather[0].id")
	}
	if sys.Sunrise == nil {
		return domain.DisplayModel{}, malformed("sys.sunrise")
	}
	if sys.Sunset == nil {
		return domain.DisplayModel{}, malformed("sys.sunset")
	}

	updated := time.UnixMilli(utils.SecondsToMillis(*resp.Dt)).In(loc)

	return domain.DisplayModel{
		City: strings.ToUpper(*resp.Name) + ", " + *sys.Country,
		Details: strings.ToUpper(*cond.Description) +
			"\n" + "Humidity: " + utils.FormatNumber(*mb.Humidity) + "%" +
			"\n" + "Pressure: " + utils.FormatNumber(*mb.Pressure) + " hPa",
		Temperature: fmt.Sprintf("%.2f", *mb.Temp) + FahrenheitSuffix,
		Updated:     "Last update: " + updated.Format(UpdatedLayout),
		Icon: SelectIcon(*cond.ID,
			utils.SecondsToMillis(*sys.Sunrise),
			utils.SecondsToMillis(*sys.Sunset),
			utils.NowMillis(now)),
	}, nil
}

func malformed(field string) error {
	return fmt.Errorf("render: missing %s: %w", field, domain.ErrMalformedResponse)
}

// SelectIcon maps an OpenWeatherMap condition id to an icon. Clear sky (800)
// depends on whether nowMs falls in [sunriseMs, sunsetMs). Other ids are
// grouped by id/100; each group selects exactly one icon.
func SelectIcon(conditionID int, sunriseMs, sunsetMs, nowMs int64) domain.Icon {
	if conditionID == 800 {
		if utils.InHalfOpen(nowMs, sunriseMs, sunsetMs) {
			return domain.IconSunny
		}
		return domain.IconClearNight
	}

	switch conditionID / 100 {
	case 2:
		return domain.IconThunder
	case 3:
		return domain.IconDrizzle
	case 5:
		return domain.IconRainy
	case 6:
		return domain.IconSnowy
	case 7:
		return domain.IconFoggy
	case 8:
		return domain.IconCloudy
	default:
		return domain.IconNone
	}
}
