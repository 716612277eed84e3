package ui

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/ekobrazil/birthday-panel/internal/config"
	"github.com/ekobrazil/birthday-panel/internal/engine"
)

// ShowDashboardWindow displays the main panel: the reference dates, the
// birthday selection with per-contact WhatsApp actions and sent flags, the
// name search and the import control.
func (app *PanelApp) ShowDashboardWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	w.Resize(fyne.NewSize(config.MainWinWidth, config.MainWinHeight))

	dateLabel := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	datesLabel := widget.NewLabel("")
	counterLabel := widget.NewLabel("")

	searchEntry := widget.NewEntry()
	searchEntry.PlaceHolder = app.GetMsg(config.TKeySearchPlaceholder)

	dateEntry := NewDateEntry()
	dateEntry.PlaceHolder = config.DayMonthLayout

	cards := container.NewVBox()
	scroll := container.NewVScroll(cards)

	var refresh func()
	refresh = func() {
		app.DashMut.Lock()
		override := app.Dash.Override()
		refs := app.Dash.References()
		visible := app.Dash.Search(searchEntry.Text)
		selectionSize := len(app.Dash.Selection())
		app.DashMut.Unlock()

		if override != "" {
			dateLabel.SetText(app.GetMsgTpl(config.TKeyLblSelectedDate,
				map[string]interface{}{"Date": override}))
		} else {
			dateLabel.SetText(app.GetMsgTpl(config.TKeyLblToday,
				map[string]interface{}{"Date": engine.TodayDayMonth(app.Dash.Clock)}))
		}
		datesLabel.SetText(app.GetMsgTpl(config.TKeyLblSendDates,
			map[string]interface{}{"Dates": strings.Join(refs, config.DateListSeparator)}))
		counterLabel.SetText(app.GetMsgData(config.TKeyLblCounter,
			map[string]interface{}{"Count": selectionSize}, selectionSize))

		cards.Objects = nil
		if len(visible) == 0 {
			emptyKey := config.TKeyEmptyToday
			if searchEntry.Text != "" {
				emptyKey = config.TKeyEmptySearch
			}
			empty := widget.NewLabel(app.GetMsg(emptyKey))
			empty.Alignment = fyne.TextAlignCenter
			cards.Add(empty)
		}
		for _, c := range visible {
			cards.Add(app.buildContactCard(c))
		}
		cards.Refresh()
	}

	searchEntry.OnChanged = func(string) { refresh() }

	applyOverride := func(text string) {
		if _, err := time.Parse(config.DayMonthLayout, text); err != nil {
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrDateEntry)), w)
			return
		}
		app.DashMut.Lock()
		app.Dash.SetReferenceOverride(text)
		app.DashMut.Unlock()
		refresh()
		app.publishFeeds()
		app.updateTrayStatus()
	}
	dateEntry.OnSubmitted = applyOverride

	applyBtn := widget.NewButtonWithIcon("", theme.ConfirmIcon(), func() {
		applyOverride(dateEntry.Text)
	})
	clearBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnClearDate), theme.ContentClearIcon(), func() {
		dateEntry.SetText("")
		app.DashMut.Lock()
		app.Dash.ClearReferenceOverride()
		app.DashMut.Unlock()
		refresh()
		app.publishFeeds()
		app.updateTrayStatus()
	})

	importBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.UploadIcon(), func() {
		app.showImportDialog(w, func() {
			searchEntry.SetText("")
			refresh()
			app.publishFeeds()
			app.updateTrayStatus()
		})
	})

	rosterBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyMenuRoster), theme.ListIcon(), func() {
		app.ShowRosterWindow()
	})

	header := container.NewVBox(
		container.NewHBox(dateLabel, counterLabel),
		datesLabel,
		searchEntry,
		container.NewBorder(nil, nil, nil,
			container.NewHBox(applyBtn, clearBtn, importBtn, rosterBtn),
			dateEntry),
	)

	w.SetContent(container.NewBorder(header, nil, nil, nil, scroll))
	w.SetOnClosed(func() { app.Window = nil })

	refresh()
	w.Show()
}

// buildContactCard renders one selected contact with badge, details, the
// WhatsApp action and the sent checkbox.
func (app *PanelApp) buildContactCard(c engine.Contact) fyne.CanvasObject {
	app.DashMut.Lock()
	kind := app.Dash.Classify(c)
	sent := app.Dash.IsSent(c)
	app.DashMut.Unlock()

	badge := widget.NewLabel(app.badgeFor(kind))
	details := widget.NewLabel(
		app.GetMsgTpl(config.TKeyLblBirthday, map[string]interface{}{"Date": c.Birthday}) +
			config.DateListSeparator +
			app.GetMsgTpl(config.TKeyLblPhone, map[string]interface{}{"Phone": c.Phone}))

	waBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnWhatsApp), theme.MailSendIcon(), func() {
		app.openWhatsApp(c)
	})
	waBtn.Importance = widget.HighImportance

	sentCheck := widget.NewCheck(app.GetMsg(config.TKeyLblSent), func(checked bool) {
		app.DashMut.Lock()
		app.Dash.SetSent(c, checked)
		app.DashMut.Unlock()
	})
	sentCheck.Checked = sent

	content := container.NewVBox(
		badge,
		details,
		container.NewHBox(waBtn, sentCheck),
	)
	return widget.NewCard(c.Name, c.Initials(), content)
}

// showImportDialog opens the file picker, reads the chosen report and feeds
// it through the import pipeline. onDone runs only after a successful import.
func (app *PanelApp) showImportDialog(w fyne.Window, onDone func()) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		defer func() { _ = r.Close() }()

		data, err := io.ReadAll(r)
		if err != nil {
			slog.Error(config.ErrStorageRead,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyImportReadFail)), w)
			return
		}

		app.DashMut.Lock()
		count, err := app.Dash.ImportText(string(data))
		app.DashMut.Unlock()

		if err != nil {
			key := config.TKeyImportBadFormat
			if errors.Is(err, engine.ErrNoValidRecords) {
				key = config.TKeyImportNoRecords
			}
			dialog.ShowError(errors.New(app.GetMsg(key)), w)
			return
		}

		dialog.ShowInformation(
			app.GetMsg(config.TKeyImportTitle),
			app.GetMsgData(config.TKeyImportOK, map[string]interface{}{"Count": count}, count),
			w)
		onDone()
	}, w)

	d.SetFilter(storage.NewExtensionFileFilter([]string{
		config.ExtCSV, config.ExtJSON, config.ExtTXT, config.ExtVCF, config.ExtVCard,
	}))
	d.Show()
}
