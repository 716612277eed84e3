package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ekobrazil/birthday-panel/internal/config"
	"github.com/ekobrazil/birthday-panel/internal/store"
)

// Dashboard is the coordinating object owning all mutable panel state: the
// active roster, the current selection, the reference-date override and the
// sent flags. The UI adapter reads through accessors and mutates only through
// the operations below; the core stays testable with zero UI dependency.
type Dashboard struct {
	Clock   Clock
	Fetcher SheetFetcher

	store     store.Store
	contacts  []Contact
	selection []Contact
	override  string // DD/MM; empty means "use the weekday policy"
	flags     *SentFlags
}

// NewDashboard wires a dashboard against its persistence and data sources.
func NewDashboard(s store.Store, clock Clock, fetcher SheetFetcher) *Dashboard {
	return &Dashboard{
		Clock:   clock,
		Fetcher: fetcher,
		store:   s,
	}
}

// Init performs the startup sequence: sent flags first, then the persisted
// roster, falling back to the bundled sheets when nothing is stored. The
// resulting roster is persisted and the selection computed against the
// weekday-policy references.
func (d *Dashboard) Init(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompDashboard)

	d.flags = LoadSentFlags(d.store)

	if stored := d.loadStoredRoster(); len(stored) > 0 {
		d.contacts = stored
		log.Info(config.MsgRosterLoaded, config.LogKeyCount, len(stored))
	} else {
		log.Info(config.MsgStorageMiss)
		if fetched, err := LoadSheets(ctx, d.Fetcher); err == nil {
			d.contacts = fetched
		} else {
			log.Warn(config.ErrAllSheetsFailed, config.LogKeyError, err)
			d.contacts = []Contact{}
		}
	}

	d.persistRoster()
	d.recompute()
}

// loadStoredRoster reads the persisted contact list. Every stored record is
// re-normalized on the way in, so hand-edited or legacy data cannot smuggle
// invalid shapes into the roster. Read failures degrade to "absent".
func (d *Dashboard) loadStoredRoster() []Contact {
	raw, err := d.store.Get(config.StorageKeyContacts)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error(config.ErrStorageRead,
				config.LogKeyComponent, config.CompDashboard,
				config.LogKeyKey, config.StorageKeyContacts,
				config.LogKeyError, err)
		}
		return nil
	}

	var decoded []Contact
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		slog.Error(config.ErrStorageRead,
			config.LogKeyComponent, config.CompDashboard,
			config.LogKeyError, err)
		return nil
	}

	contacts := make([]Contact, 0, len(decoded))
	for _, c := range decoded {
		raw := map[string]any{"name": c.Name, "phone": c.Phone, "birthday": c.Birthday}
		if valid, ok := MapRawContact(raw); ok {
			contacts = append(contacts, valid)
		}
	}
	return contacts
}

// persistRoster writes the full active collection. Write failures are logged
// and dropped; the in-memory state remains authoritative for this session.
func (d *Dashboard) persistRoster() {
	payload, err := json.Marshal(d.contacts)
	if err != nil {
		slog.Error(config.ErrStorageWrite,
			config.LogKeyComponent, config.CompDashboard,
			config.LogKeyError, err)
		return
	}
	if err := d.store.Set(config.StorageKeyContacts, string(payload)); err != nil {
		slog.Error(config.ErrStorageWrite,
			config.LogKeyComponent, config.CompDashboard,
			config.LogKeyKey, config.StorageKeyContacts,
			config.LogKeyError, err)
		return
	}
	slog.Debug(config.MsgRosterPersisted,
		config.LogKeyComponent, config.CompDashboard,
		config.LogKeyCount, len(d.contacts))
}

// recompute refreshes the selection against the active references.
func (d *Dashboard) recompute() {
	refs := d.References()
	d.selection = FilterByDates(d.contacts, refs)
	slog.Debug(config.MsgSelection,
		config.LogKeyComponent, config.CompDashboard,
		config.LogKeyDates, refs,
		config.LogKeyCount, len(d.selection))
}

// References returns the DD/MM dates birthday matching currently targets:
// the single override date when one is set, otherwise the weekday-policy set.
func (d *Dashboard) References() []string {
	if d.override != "" {
		return []string{d.override}
	}
	return DateReferences(d.Clock.Now())
}

// Override returns the active override date, empty when none is set.
func (d *Dashboard) Override() string {
	return d.override
}

// SetReferenceOverride points the selection at one explicit DD/MM date.
// Process-lifetime only; never persisted.
func (d *Dashboard) SetReferenceOverride(dayMonth string) {
	d.override = dayMonth
	d.recompute()
	slog.Info(config.MsgReferenceSet,
		config.LogKeyComponent, config.CompDashboard,
		config.LogKeyDate, dayMonth)
}

// ClearReferenceOverride restores the weekday-policy references.
func (d *Dashboard) ClearReferenceOverride() {
	d.override = ""
	d.recompute()
	slog.Info(config.MsgReferenceClear, config.LogKeyComponent, config.CompDashboard)
}

// Roster returns the full active contact collection.
func (d *Dashboard) Roster() []Contact {
	return d.contacts
}

// Selection returns the contacts matching the active references.
func (d *Dashboard) Selection() []Contact {
	return d.selection
}

// Search narrows the current selection by name. The search never reaches
// beyond the already-selected birthday contacts.
func (d *Dashboard) Search(query string) []Contact {
	return SearchByName(d.selection, query)
}

// ImportText replaces the roster wholesale with the contacts parsed from an
// uploaded report, persists it and recomputes the selection. The previous
// roster is left untouched on any error. Returns the number of imported
// contacts; callers should also reset any active name search, which would
// otherwise filter against stale input.
func (d *Dashboard) ImportText(text string) (int, error) {
	contacts, err := ParseContacts(text)
	if err != nil {
		return 0, err
	}

	d.contacts = contacts
	d.persistRoster()
	d.recompute()

	slog.Info(config.MsgRosterReplaced,
		config.LogKeyComponent, config.CompDashboard,
		config.LogKeyCount, len(contacts))
	return len(contacts), nil
}

// ReloadFromSheets discards the active roster in favor of a fresh read of the
// bundled sheets. The previous roster is kept on any error.
func (d *Dashboard) ReloadFromSheets(ctx context.Context) (int, error) {
	contacts, err := LoadSheets(ctx, d.Fetcher)
	if err != nil {
		return 0, err
	}

	d.contacts = contacts
	d.persistRoster()
	d.recompute()

	slog.Info(config.MsgRosterReplaced,
		config.LogKeyComponent, config.CompDashboard,
		config.LogKeyCount, len(contacts))
	return len(contacts), nil
}

// Classify categorizes a contact's birthday against literal today, never the
// override. Drives badge text and message personalization.
func (d *Dashboard) Classify(c Contact) BirthdayKind {
	return ClassifyBirthday(c.Birthday, d.Clock.Now())
}

// IsSent reports the sent flag for a contact under the primary reference.
func (d *Dashboard) IsSent(c Contact) bool {
	return d.flags.IsSent(d.primaryReference(), c)
}

// SetSent records the sent flag for a contact under the primary reference.
func (d *Dashboard) SetSent(c Contact, sent bool) {
	d.flags.SetSent(d.primaryReference(), c, sent)
}

// primaryReference is the date sent flags are indexed under: the override
// when active, otherwise literal today.
func (d *Dashboard) primaryReference() string {
	if d.override != "" {
		return d.override
	}
	return TodayDayMonth(d.Clock)
}

// CalendarFeed renders the roster as an ICS feed for the localhost server.
func (d *Dashboard) CalendarFeed(format SummaryFormatter) ([]byte, error) {
	return BuildCalendar(d.contacts, d.Clock.Now(), format)
}

// selectionPayload is the wire shape of the selection JSON route.
type selectionPayload struct {
	Dates    []string  `json:"dates"`
	Contacts []Contact `json:"contacts"`
}

// SelectionJSON renders the active references and their matching contacts for
// the localhost server's JSON route.
func (d *Dashboard) SelectionJSON() ([]byte, error) {
	payload := selectionPayload{
		Dates:    d.References(),
		Contacts: d.selection,
	}
	if payload.Contacts == nil {
		payload.Contacts = []Contact{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrJSONEncode, err)
	}
	return data, nil
}
