package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/millennium-run/internal/settings"
)

func TestWindowTitle(t *testing.T) {
	assert.Equal(t, "Select your language.", WindowTitle(settings.Unknown))
	assert.Equal(t, "밀레니엄 런", WindowTitle(settings.Korean))
}

func TestPrinterTranslates(t *testing.T) {
	en := Printer(settings.Unknown)
	ko := Printer(settings.Korean)

	assert.Equal(t, "Start", en.Sprintf(StartMenu))
	assert.Equal(t, "시작", ko.Sprintf(StartMenu))
	assert.Equal(t, "Aris     stage  3 / 64", en.Sprintf(StageLine, "Aris", 3, 64))
	assert.Equal(t, "아리스      스테이지 12 / 64", ko.Sprintf(StageLine, "아리스", 12, 64))
}

func TestEveryKeyHasKorean(t *testing.T) {
	keys := []string{
		GameTitle, SelectLanguage, NotifyTitle, NotifyText, Loading,
		StartMenu, ExitMenu, ExitMessage, Exit, NoExit,
		EnterStage, StageLine, PauseHint, BeginnerHint,
		PauseTitle, ResumeMenu, SettingMenu, GiveUpMenu, ResumeHint, SettingHint,
		ResolutionOption, ScreenModeOption, BackgroundVolume, EffectVolume, VoiceVolume,
	}
	for _, k := range keys {
		_, ok := korean[k]
		assert.True(t, ok, "missing Korean text for %q", k)
	}
}

func TestCharacter(t *testing.T) {
	assert.Equal(t, "Momoi", Character(Printer(settings.Unknown), "momoi"))
	assert.Equal(t, "유즈", Character(Printer(settings.Korean), "yuzu"))
	assert.Equal(t, "noa", Character(Printer(settings.Korean), "noa"))
}

func TestScreenMode(t *testing.T) {
	assert.Equal(t, "Full screen", ScreenMode(Printer(settings.Unknown), settings.FullScreen))
	assert.Equal(t, "창 모드", ScreenMode(Printer(settings.Korean), settings.Windowed))
}
