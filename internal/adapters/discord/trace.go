package discord

import (
	"time"

	"github.com/rs/zerolog/log"
)

func step(label string) func() {
	start := time.Now()
	return func() { log.Debug().Str("component", "trace").Dur("took", time.Since(start)).Msg(label) }
}
