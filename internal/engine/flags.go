package engine

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ekobrazil/birthday-panel/internal/config"
	"github.com/ekobrazil/birthday-panel/internal/store"
)

// SentFlags tracks the per-date, per-contact "message already sent" booleans.
// The whole mapping is persisted on every mutation; flags for past dates
// accumulate until externally cleared.
type SentFlags struct {
	store store.Store
	flags map[string]map[string]bool
}

// LoadSentFlags reads the persisted flag store. Absent or malformed data
// degrades to an empty store; startup never fails on it.
func LoadSentFlags(s store.Store) *SentFlags {
	sf := &SentFlags{store: s, flags: make(map[string]map[string]bool)}

	raw, err := s.Get(config.StorageKeySentFlags)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error(config.ErrStorageRead,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyKey, config.StorageKeySentFlags,
				config.LogKeyError, err)
		}
		return sf
	}

	var decoded map[string]map[string]bool
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil || decoded == nil {
		slog.Warn(config.MsgFlagsMalformed,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyError, err)
		return sf
	}

	sf.flags = decoded
	slog.Debug(config.MsgFlagsLoaded,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(decoded))
	return sf
}

// IsSent reports whether the contact was marked sent for the given DD/MM date.
func (sf *SentFlags) IsSent(date string, contact Contact) bool {
	return sf.flags[date][contact.Key()]
}

// SetSent records the sent state for (date, contact) and persists the whole
// store immediately. Every toggle is one synchronous read-modify-persist
// cycle; write failures are logged and dropped, never surfaced to the user.
func (sf *SentFlags) SetSent(date string, contact Contact, sent bool) {
	byKey, ok := sf.flags[date]
	if !ok {
		byKey = make(map[string]bool)
		sf.flags[date] = byKey
	}
	byKey[contact.Key()] = sent

	sf.persist()

	slog.Debug(config.MsgFlagToggled,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyDate, date,
		config.LogKeySent, sent)
}

// Toggle flips the flag for (date, contact) and returns the new state.
func (sf *SentFlags) Toggle(date string, contact Contact) bool {
	next := !sf.IsSent(date, contact)
	sf.SetSent(date, contact, next)
	return next
}

func (sf *SentFlags) persist() {
	payload, err := json.Marshal(sf.flags)
	if err != nil {
		slog.Error(config.ErrStorageWrite,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyError, err)
		return
	}
	if err := sf.store.Set(config.StorageKeySentFlags, string(payload)); err != nil {
		slog.Error(config.ErrStorageWrite,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyKey, config.StorageKeySentFlags,
			config.LogKeyError, err)
	}
}
