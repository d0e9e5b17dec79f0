// Package ircv3 provides helpers for IRCv3 extensions that need a
// globally-unique token: the message-tags "msgid" tag and the batch
// extension's batch reference parameter.
package ircv3

import "github.com/rs/xid"

// IDGenerator produces globally-unique, lexically-sortable identifiers
// suitable for msgid tag values and batch reference tokens. It is
// backed by github.com/rs/xid, whose id already combines a machine
// identifier, a process id, a timestamp, and a counter the way
// the conventional "two monotonic counters combined with a wall-clock
// timestamp" describes, without this package needing to assemble any
// of that itself.
//
// The zero value is ready to use; IDGenerator has no state of its own
// beyond what xid already keeps as process-global counters, so it is
// safe for concurrent use by multiple goroutines.
type IDGenerator struct{}

// NewMsgID returns a new identifier suitable for a "msgid" message tag.
func (IDGenerator) NewMsgID() string {
	return xid.New().String()
}

// NewBatchRef returns a new identifier suitable for a BATCH reference
// token (the parameter following the +/- sign in a BATCH command and
// the "batch" tag value on messages belonging to it).
func (IDGenerator) NewBatchRef() string {
	return xid.New().String()
}
