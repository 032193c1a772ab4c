// Package locale holds the player-facing strings of the game in every
// supported language. Message keys are the English text, so a lookup that
// misses still prints something readable.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/vovakirdan/millennium-run/internal/settings"
)

// Message keys.
const (
	GameTitle      = "Millennium Run"
	SelectLanguage = "Select your language."

	NotifyTitle = "Notice"
	NotifyText  = "This is a non-commercial fan game. Characters belong to their owners."

	Loading = "Loading"

	StartMenu   = "Start"
	ExitMenu    = "Quit"
	ExitMessage = "Quit the game?"
	Exit        = "Yes"
	NoExit      = "No"

	EnterStage   = "Press Enter to clear the stage"
	StageLine    = "%-8s stage %2d / %d"
	PauseHint    = "Esc: pause"
	BeginnerHint = "Use %s and %s to pick a character."

	PauseTitle  = "Paused"
	ResumeMenu  = "Resume"
	SettingMenu = "Settings"
	GiveUpMenu  = "Give up"
	ResumeHint  = "Esc: resume"
	SettingHint = "%s/%s: select  %s/%s: change  Esc: back"

	ResolutionOption = "Resolution"
	ScreenModeOption = "Screen mode"
	BackgroundVolume = "Background volume"
	EffectVolume     = "Effect volume"
	VoiceVolume      = "Voice volume"
)

// Screen mode display names, keyed by the settings name.
var screenModes = map[string][2]string{
	"Windowed":   {"Windowed", "창 모드"},
	"Borderless": {"Borderless", "테두리 없는 창"},
	"FullScreen": {"Full screen", "전체 화면"},
}

// Character display names, keyed by the save package's lowercase names.
var characters = map[string][2]string{
	"aris":   {"Aris", "아리스"},
	"momoi":  {"Momoi", "모모이"},
	"midori": {"Midori", "미도리"},
	"yuzu":   {"Yuzu", "유즈"},
}

var korean = map[string]string{
	GameTitle:      "밀레니엄 런",
	SelectLanguage: "언어를 선택하세요.",
	NotifyTitle:    "알림",
	NotifyText:     "이 게임은 비상업적 팬 게임입니다. 캐릭터의 권리는 원작자에게 있습니다.",
	Loading:        "불러오는 중",
	StartMenu:      "시작",
	ExitMenu:       "종료",
	ExitMessage:    "게임을 종료할까요?",
	Exit:           "예",
	NoExit:         "아니요",
	EnterStage:     "Enter 키를 눌러 스테이지를 클리어하세요",
	StageLine:      "%-8s 스테이지 %2d / %d",
	PauseHint:      "Esc: 일시 정지",
	BeginnerHint:   "%s 키와 %s 키로 캐릭터를 고르세요.",

	PauseTitle:  "일시 정지",
	ResumeMenu:  "계속하기",
	SettingMenu: "설정",
	GiveUpMenu:  "포기하기",
	ResumeHint:  "Esc: 계속하기",
	SettingHint: "%s/%s: 선택  %s/%s: 변경  Esc: 뒤로",

	ResolutionOption: "해상도",
	ScreenModeOption: "화면 모드",
	BackgroundVolume: "배경 음량",
	EffectVolume:     "효과음 음량",
	VoiceVolume:      "음성 음량",
}

// Catalog is the message catalog for every supported language.
var Catalog = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range korean {
		// Only fails on a malformed message, which the table does not have.
		if err := b.SetString(language.Korean, key, text); err != nil {
			panic(err)
		}
	}
	for _, table := range []map[string][2]string{characters, screenModes} {
		for _, names := range table {
			if err := b.SetString(language.Korean, names[0], names[1]); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Printer returns a printer for l. Unknown prints English.
func Printer(l settings.Locale) *message.Printer {
	tag := l.Tag()
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag, message.Catalog(Catalog))
}

// WindowTitle is the terminal title for l. Before a language is picked the
// title asks for one.
func WindowTitle(l settings.Locale) string {
	if l == settings.Unknown {
		return SelectLanguage
	}
	return Printer(l).Sprintf(GameTitle)
}

// Character returns the display name of a character by its save name.
func Character(p *message.Printer, name string) string {
	names, ok := characters[name]
	if !ok {
		return name
	}
	return p.Sprintf(names[0])
}

// ScreenMode returns the display name of m.
func ScreenMode(p *message.Printer, m settings.ScreenMode) string {
	names, ok := screenModes[m.String()]
	if !ok {
		return m.String()
	}
	return p.Sprintf(names[0])
}
