package room

import (
	"weizen-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages keeps the most recent game log messages for late joiners
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}
