package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/ekobrazil/birthday-panel/internal/config"
	"github.com/ekobrazil/birthday-panel/internal/engine"
	"github.com/ekobrazil/birthday-panel/internal/server"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/zalando/go-keyring"
)

// PanelApp encapsulates the UI state, preferences, and the dashboard core.
type PanelApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server *server.FeedServer
	Dash   *engine.Dashboard

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem    *fyne.MenuItem
	TrayDashboardItem *fyne.MenuItem
	TrayRosterItem    *fyne.MenuItem
	TraySettingsItem  *fyne.MenuItem

	SupportedLanguages []string

	// DashMut guards the dashboard core. Fyne callbacks run on the main
	// goroutine but the feed server publishes from Run's setup path too.
	DashMut sync.Mutex

	settingsWindow fyne.Window
	rosterWindow   fyne.Window
}

// NewPanelApp constructs the application and wires dependencies.
func NewPanelApp(a fyne.App, ctx context.Context, srv *server.FeedServer, dash *engine.Dashboard) *PanelApp {
	return &PanelApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Dash:               dash,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run launches the application services and the main UI loop.
func (app *PanelApp) Run() {
	app.SetupI18n()

	app.DashMut.Lock()
	app.Dash.Init(app.Ctx)
	app.DashMut.Unlock()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(theme.CalendarIcon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.ShowDashboardWindow()
	app.publishFeeds()
	app.updateTrayStatus()

	app.App.Run()
}

// setupTrayMenu constructs the system tray menu.
func (app *PanelApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(fmt.Sprintf(config.FallbackTrayText, 0), func() {
		app.ShowDashboardWindow()
	})

	app.TrayDashboardItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuDashboard), func() {
		app.ShowDashboardWindow()
	})

	app.TrayRosterItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRoster), func() {
		app.ShowRosterWindow()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayDashboardItem,
		app.TrayRosterItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *PanelApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayDashboardItem.Label = app.GetMsg(config.TKeyMenuDashboard)
	app.TrayRosterItem.Label = app.GetMsg(config.TKeyMenuRoster)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// updateTrayStatus shows how many people are in the current selection.
func (app *PanelApp) updateTrayStatus() {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	app.DashMut.Lock()
	count := len(app.Dash.Selection())
	app.DashMut.Unlock()

	label := app.GetMsgData(config.TKeyLblCounter, map[string]interface{}{"Count": count}, count)
	if label == config.TKeyLblCounter {
		label = fmt.Sprintf(config.FallbackTrayText, count)
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// publishFeeds re-renders the calendar and selection payloads for the
// localhost server. Called after every roster or reference mutation.
func (app *PanelApp) publishFeeds() {
	app.DashMut.Lock()
	defer app.DashMut.Unlock()

	ics, err := app.Dash.CalendarFeed(app.buildSummaryFormatter())
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	} else {
		app.Server.UpdateCalendar(ics)
	}

	sel, err := app.Dash.SelectionJSON()
	if err != nil {
		slog.Error(config.ErrJSONEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	app.Server.UpdateSelection(sel)
}

// openWhatsApp builds the personalized message for a contact and hands the
// wa.me link to the OS browser.
func (app *PanelApp) openWhatsApp(contact engine.Contact) {
	app.DashMut.Lock()
	kind := app.Dash.Classify(contact)
	app.DashMut.Unlock()

	message := engine.BuildMessage(contact, kind, app.buildMessageFormatter())
	link := engine.WhatsAppURL(contact, message)

	slog.Info(config.MsgOpeningWhatsApp,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyName, contact.Name)

	parsed, err := url.Parse(link)
	if err != nil {
		slog.Error(config.ErrInvalidURL,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	if err := app.App.OpenURL(parsed); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyURL, link,
			config.LogKeyError, err)
	}
}

// buildMessageFormatter returns a closure that localizes the outbound
// WhatsApp text per birthday kind and appends the celebration image link.
func (app *PanelApp) buildMessageFormatter() engine.MessageFormatter {
	return func(firstName string, kind engine.BirthdayKind) string {
		key := messageKeyFor(kind)

		msg, err := app.localize(key, map[string]interface{}{
			"Name":     firstName,
			"ImageURL": config.CelebrationImageURL,
		})
		if err != nil || msg == "" {
			return fmt.Sprintf(config.FallbackMessage, firstName)
		}
		return msg
	}
}

// buildSummaryFormatter returns a closure that localizes calendar summaries.
func (app *PanelApp) buildSummaryFormatter() engine.SummaryFormatter {
	return func(name string) string {
		msg, err := app.localize(config.TKeyEvtSummary, map[string]interface{}{"Name": name})
		if err != nil || msg == "" {
			return fmt.Sprintf(config.FallbackSummary, name)
		}
		return msg
	}
}

// badgeFor maps a birthday kind to its localized badge text.
func (app *PanelApp) badgeFor(kind engine.BirthdayKind) string {
	var key string
	switch kind {
	case engine.KindToday:
		key = config.TKeyBadgeToday
	case engine.KindTomorrow:
		key = config.TKeyBadgeTomorrow
	case engine.KindSaturday:
		key = config.TKeyBadgeSaturday
	case engine.KindSunday:
		key = config.TKeyBadgeSunday
	case engine.KindTuesday:
		key = config.TKeyBadgeTuesday
	default:
		key = config.TKeyBadgeOther
	}

	badge := app.GetMsg(key)
	if badge == key {
		return config.FallbackBadge
	}
	return badge
}

// messageKeyFor maps a birthday kind to its message template key.
func messageKeyFor(kind engine.BirthdayKind) string {
	switch kind {
	case engine.KindToday:
		return config.TKeyMsgToday
	case engine.KindTomorrow:
		return config.TKeyMsgTomorrow
	case engine.KindSaturday:
		return config.TKeyMsgSaturday
	case engine.KindSunday:
		return config.TKeyMsgSunday
	case engine.KindTuesday:
		return config.TKeyMsgTuesday
	default:
		return config.TKeyMsgOther
	}
}

// BuildFetcher assembles the sheet fetcher from UI preferences and Keyring.
func (app *PanelApp) BuildFetcher() engine.SheetFetcher {
	mode := app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeDir)

	if mode == config.SourceModeWeb {
		user := app.Preferences.String(config.PrefUsername)
		pass := ""
		if user != "" {
			if p, err := keyring.Get(config.KeyringService, user); err == nil {
				pass = p
			} else {
				slog.Debug(config.MsgPassFail,
					config.LogKeyUser, user,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)
			}
		}
		return engine.NewHTTPSheetFetcher(app.Preferences.String(config.PrefSheetURL), user, pass)
	}

	return &engine.DirSheetFetcher{
		Dir: app.Preferences.StringWithFallback(config.PrefSheetDir, config.DefaultSheetDir),
	}
}
