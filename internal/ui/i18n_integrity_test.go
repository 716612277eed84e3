package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ekobrazil/birthday-panel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadLocale(t *testing.T, lang string) map[string]interface{} {
	t.Helper()

	path := filepath.Join("locales", "active."+lang+".json")
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Fallback for running tests from a different CWD
		path = filepath.Join("..", "..", "internal", "ui", "locales", "active."+lang+".json")
		content, err = os.ReadFile(path)
	}
	require.NoErrorf(t, err, "Must load active.%s.json", lang)

	var jsonMap map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")
	return jsonMap
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in both locale JSON files.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWinTitle,
		config.TKeyWinRoster,
		config.TKeyMenuDashboard,
		config.TKeyMenuRoster,
		config.TKeyMenuSettings,
		config.TKeyLblToday,
		config.TKeyLblSendDates,
		config.TKeyLblSelectedDate,
		config.TKeyLblCounter,
		config.TKeySearchPlaceholder,
		config.TKeyBtnImport,
		config.TKeyBtnWhatsApp,
		config.TKeyBtnClearDate,
		config.TKeyLblSent,
		config.TKeyLblBirthday,
		config.TKeyLblPhone,
		config.TKeyEmptyToday,
		config.TKeyEmptySearch,
		config.TKeyBadgeToday,
		config.TKeyBadgeTomorrow,
		config.TKeyBadgeSaturday,
		config.TKeyBadgeSunday,
		config.TKeyBadgeTuesday,
		config.TKeyBadgeOther,
		config.TKeyMsgToday,
		config.TKeyMsgTomorrow,
		config.TKeyMsgSaturday,
		config.TKeyMsgSunday,
		config.TKeyMsgTuesday,
		config.TKeyMsgOther,
		config.TKeyEvtSummary,
		config.TKeyImportOK,
		config.TKeyImportBadFormat,
		config.TKeyImportNoRecords,
		config.TKeyImportReadFail,
		config.TKeyImportTitle,
		config.TKeyReloadOK,
		config.TKeyReloadFail,
		config.TKeyLblLanguage,
		config.TKeyHelpLanguage,
		config.TKeyLblSource,
		config.TKeyModeDir,
		config.TKeyModeWeb,
		config.TKeyLblSheetDir,
		config.TKeyLblURL,
		config.TKeyHelpURL,
		config.TKeyLblUser,
		config.TKeyLblPass,
		config.TKeyLblPort,
		config.TKeyHelpPort,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyBtnBrowse,
		config.TKeyBtnReload,
		config.TKeyColName,
		config.TKeyColBirthday,
		config.TKeyColPhone,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
		config.TKeyErrDateEntry,
		config.TKeyLblFooter,
	}

	for _, lang := range config.SupportedLanguages {
		jsonMap := loadLocale(t, lang)
		for _, key := range keysToCheck {
			_, exists := jsonMap[key]
			assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
		}
	}
}

// TestI18nLocalesMirrorEachOther ensures no locale drifts: every key present
// in one file must exist in all the others.
func TestI18nLocalesMirrorEachOther(t *testing.T) {
	require.GreaterOrEqual(t, len(config.SupportedLanguages), 2)

	reference := loadLocale(t, config.SupportedLanguages[0])
	for _, lang := range config.SupportedLanguages[1:] {
		other := loadLocale(t, lang)

		for key := range reference {
			_, exists := other[key]
			assert.Truef(t, exists, "Key '%s' missing in active.%s.json", key, lang)
		}
		for key := range other {
			_, exists := reference[key]
			assert.Truef(t, exists, "Key '%s' missing in active.%s.json", key, config.SupportedLanguages[0])
		}
	}
}

// TestI18nMessageTemplates ensures the WhatsApp templates keep their
// placeholders in every language.
func TestI18nMessageTemplates(t *testing.T) {
	msgKeys := []string{
		config.TKeyMsgToday,
		config.TKeyMsgTomorrow,
		config.TKeyMsgSaturday,
		config.TKeyMsgSunday,
		config.TKeyMsgTuesday,
		config.TKeyMsgOther,
	}

	for _, lang := range config.SupportedLanguages {
		jsonMap := loadLocale(t, lang)
		for _, key := range msgKeys {
			tpl, ok := jsonMap[key].(string)
			require.Truef(t, ok, "Template '%s' must be a plain string in active.%s.json", key, lang)
			assert.Containsf(t, tpl, "{{.Name}}", "Template '%s' (%s) must personalize with the first name", key, lang)
			assert.Containsf(t, tpl, "{{.ImageURL}}", "Template '%s' (%s) must append the celebration image", key, lang)
		}
	}
}
