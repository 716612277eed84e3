package ui

import (
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/ekobrazil/birthday-panel/internal/config"
	"github.com/ekobrazil/birthday-panel/internal/engine"
)

// calendarOrder rewrites DD/MM as MM/DD so the zero-padded strings sort in
// calendar order.
func calendarOrder(birthday string) string {
	if len(birthday) != config.DayMonthLen {
		return birthday
	}
	return birthday[3:] + "/" + birthday[:2]
}

// ShowRosterWindow displays a window with the full active roster.
// It implements a singleton pattern: if the window is already open, it
// requests focus. It uses native Fyne table headers for sorting interaction.
func (app *PanelApp) ShowRosterWindow() {
	if app.rosterWindow != nil {
		app.rosterWindow.RequestFocus()
		return
	}

	title := app.GetMsg(config.TKeyWinRoster)
	app.rosterWindow = app.App.NewWindow(title)
	app.rosterWindow.Resize(fyne.NewSize(config.RosterWinWidth, config.RosterWinHeight))

	// Local copy for sorting/display so table callbacks never race the core.
	app.DashMut.Lock()
	roster := app.Dash.Roster()
	displayContacts := make([]engine.Contact, len(roster))
	copy(displayContacts, roster)
	app.DashMut.Unlock()

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(displayContacts))

	// Internal Sorting State
	currentSortCol := config.ColIDBirthday
	sortAsc := true

	var refreshTable func()

	// performSort applies the sorting logic based on the selected column.
	performSort := func() {
		sort.Slice(displayContacts, func(i, j int) bool {
			a, b := displayContacts[i], displayContacts[j]
			var less bool
			switch currentSortCol {
			case config.ColIDName:
				less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
			case config.ColIDPhone:
				less = engine.NormalizePhone(a.Phone) < engine.NormalizePhone(b.Phone)
			default: // config.ColIDBirthday
				oa, ob := calendarOrder(a.Birthday), calendarOrder(b.Birthday)
				if oa == ob {
					// Secondary sort key: Name
					less = a.Name < b.Name
				} else {
					less = oa < ob
				}
			}

			if !sortAsc {
				return !less
			}
			return less
		})

		slog.Debug(config.LogMsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}

	// Initial sort (Default: By Birthday, Ascending)
	performSort()

	table := widget.NewTable(
		func() (int, int) {
			return len(displayContacts), 3
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(displayContacts) {
				return
			}
			c := displayContacts[id.Row]

			switch id.Col {
			case config.ColIDName:
				label.SetText(c.Name)
			case config.ColIDBirthday:
				label.SetText(c.Birthday)
			case config.ColIDPhone:
				label.SetText(c.Phone)
			}
		},
	)

	table.ShowHeaderRow = true

	// CreateHeader returns a button for interactivity.
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}

	// UpdateHeader sets the localized title and visual sort indicator.
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDName:
			titleKey = config.TKeyColName
		case config.ColIDBirthday:
			titleKey = config.TKeyColBirthday
		case config.ColIDPhone:
			titleKey = config.TKeyColPhone
		}

		text := app.GetMsg(titleKey)

		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}

		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDBirthday, config.ColWidthBirthday)
	table.SetColumnWidth(config.ColIDPhone, config.ColWidthPhone)

	refreshTable = func() {
		performSort()
		table.Refresh()
	}

	content := container.NewBorder(nil, nil, nil, nil, table)
	app.rosterWindow.SetContent(content)

	app.rosterWindow.SetOnClosed(func() {
		app.rosterWindow = nil
	})

	app.rosterWindow.Show()
}
