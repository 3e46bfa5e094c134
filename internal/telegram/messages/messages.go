package messages

import (
	"html"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"histobot/internal/catalogue"
	"histobot/internal/stories/access"
	"histobot/internal/telegram/callbacks"
)

// ParseMode used for every rendered screen.
const ParseMode = tgbotapi.ModeHTML

type localizer interface {
	Get(lang, key string, params map[string]interface{}) string
}

// Screen is a rendered message: text plus inline keyboard.
type Screen struct {
	Text     string
	Keyboard tgbotapi.InlineKeyboardMarkup
}

// Renderer builds the bot screens from the catalogue and translations.
type Renderer struct {
	l10n      localizer
	catalogue *catalogue.Catalogue
	support   string
}

func NewRenderer(l10n localizer, c *catalogue.Catalogue, support string) *Renderer {
	return &Renderer{
		l10n:      l10n,
		catalogue: c,
		support:   support,
	}
}

// MainMenu renders the greeting, the status and the section buttons. The
// activate button is present only while the user can still start a trial.
// firstName is user input and is escaped for ParseMode.
func (r *Renderer) MainMenu(lang, firstName string, status access.Status) Screen {
	text := r.StatusText(lang, status)
	if firstName != "" {
		text = r.l10n.Get(lang, "menu.greeting", map[string]interface{}{"name": html.EscapeString(firstName)}) + "\n\n" + text
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if status.CanActivateTrial() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(r.l10n.Get(lang, "buttons.activate_trial", nil), callbacks.ActivateTrial),
		))
	}
	for _, row := range r.catalogue.Layout() {
		rows = append(rows, lo.Map(row, func(s catalogue.Section, _ int) tgbotapi.InlineKeyboardButton {
			return tgbotapi.NewInlineKeyboardButtonData(s.Title, callbacks.Topic(s.Key))
		}))
	}

	return Screen{Text: text, Keyboard: tgbotapi.NewInlineKeyboardMarkup(rows...)}
}

// Section renders the item list of a section.
func (r *Renderer) Section(lang string, s catalogue.Section) Screen {
	rows := lo.Map(s.Items, func(it catalogue.Item, i int) []tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(it.Label, callbacks.Content(s.Key, i+1)),
		)
	})
	rows = append(rows, r.backRow(lang))

	return Screen{
		Text:     r.l10n.Get(lang, "menu.section", map[string]interface{}{"title": s.Title}),
		Keyboard: tgbotapi.NewInlineKeyboardMarkup(rows...),
	}
}

// Info renders the static, ungated info section.
func (r *Renderer) Info(lang string, s catalogue.Section) Screen {
	return Screen{
		Text:     s.Content,
		Keyboard: tgbotapi.NewInlineKeyboardMarkup(r.backRow(lang)),
	}
}

// Leaf renders a single document with navigation back to its section and home.
func (r *Renderer) Leaf(lang, section string, it catalogue.Item) Screen {
	return Screen{
		Text: it.Content,
		Keyboard: tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(r.l10n.Get(lang, "buttons.back_to_section", nil), callbacks.Topic(section)),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(r.l10n.Get(lang, "buttons.main_menu", nil), callbacks.BackToMenu),
			),
		),
	}
}

// StatusText describes the user's access for the main menu.
func (r *Renderer) StatusText(lang string, st access.Status) string {
	params := map[string]interface{}{
		"section": r.trialSectionTitle(),
		"support": r.support,
	}

	switch st.Kind {
	case access.StatusFull:
		return r.l10n.Get(lang, "status.full", nil)
	case access.StatusTrialActive:
		params["remaining"] = r.FormatRemaining(lang, st.Remaining)
		return r.l10n.Get(lang, "status.trial_active", params)
	case access.StatusTrialExpired:
		return r.l10n.Get(lang, "status.trial_expired", params)
	default:
		return r.l10n.Get(lang, "status.trial_available", params)
	}
}

// Denial returns the toast for a refused access decision.
func (r *Renderer) Denial(lang string, d access.Decision) string {
	switch d.Reason {
	case access.ReasonExpired:
		return r.l10n.Get(lang, "access.expired", nil)
	case access.ReasonSectionLocked:
		return r.l10n.Get(lang, "access.section_locked", map[string]interface{}{"section": r.trialSectionTitle()})
	default:
		return r.l10n.Get(lang, "access.no_trial", nil)
	}
}

// Text returns a plain translated string.
func (r *Renderer) Text(lang, key string) string {
	return r.l10n.Get(lang, key, nil)
}

// FormatRemaining renders whole hours and minutes, e.g. "1 ч. 30 мин.".
func (r *Renderer) FormatRemaining(lang string, d time.Duration) string {
	hours, minutes := SplitRemaining(d)
	return r.l10n.Get(lang, "status.remaining", map[string]interface{}{
		"hours":   hours,
		"minutes": minutes,
	})
}

// SplitRemaining floors d into whole hours and the whole minutes left over.
// Negative durations count as zero.
func SplitRemaining(d time.Duration) (hours, minutes int) {
	if d <= 0 {
		return 0, 0
	}
	secs := int64(d / time.Second)
	return int(secs / 3600), int(secs % 3600 / 60)
}

func (r *Renderer) backRow(lang string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(r.l10n.Get(lang, "buttons.back", nil), callbacks.BackToMenu),
	)
}

func (r *Renderer) trialSectionTitle() string {
	s, err := r.catalogue.Section(r.catalogue.TrialSection())
	if err != nil {
		return r.catalogue.TrialSection()
	}
	return s.Title
}
