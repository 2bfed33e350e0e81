// Package timezone resolves the application timezone from APP_TIMEZONE (an IANA name such as
// "Asia/Seoul"). Booking dates and slot clocks are wall-clock values in this location, and every
// "now" the booking rules compare against comes from here.
package timezone

import (
	"meetroom/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimezone = "UTC"

var location = sync.OnceValue(func() *time.Location {
	return load(config.Get().App.Timezone)
})

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = defaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Location returns the application timezone.
func Location() *time.Location {
	return location()
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(Location())
}

// Format formats t as seen in the application timezone.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
