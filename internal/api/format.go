package telegram

import (
	"strings"

	"github.com/pkg/errors"

	app "plant-bot/internal/application"
	"plant-bot/internal/domain/entity"
	"plant-bot/internal/domain/port"
	"plant-bot/internal/infrastructure/i18n"
)

// formatResult текст основного блока результата
func formatResult(tr port.Translator, locale entity.Locale, out *app.RecognitionOutput) string {
	var b strings.Builder
	b.WriteString(tr.Text(locale, i18n.KeyResultLabel))
	b.WriteString("\n\n")

	switch out.Outcome {
	case app.OutcomeNoInput:
		b.WriteString(tr.Text(locale, i18n.KeyNoImagePrompt))
	case app.OutcomeDecodeError:
		if errors.Is(out.Err, entity.ErrUnsupportedType) {
			b.WriteString(tr.Text(locale, i18n.KeyUnsupportedType))
		} else {
			b.WriteString(tr.Text(locale, i18n.KeyDecodeError))
		}
	case app.OutcomeEmpty:
		b.WriteString(tr.Text(locale, i18n.KeyNotIdentified))
	case app.OutcomeRendered:
		blocks := make([]string, 0, len(out.View.Blocks))
		for _, block := range out.View.Blocks {
			blocks = append(blocks, formatBlock(tr, locale, block))
		}
		b.WriteString(strings.Join(blocks, "\n\n"))
	}

	return b.String()
}

// formatBlock строка с названием и уверенностью; поля карточки только для известных видов.
func formatBlock(tr port.Translator, locale entity.Locale, block app.SpeciesBlock) string {
	lines := []string{
		tr.Text(locale, i18n.KeyScientificName, block.Detection.Label, block.Detection.Confidence),
	}
	if block.Found() {
		for _, f := range block.Record.Fields() {
			lines = append(lines, tr.Text(locale, i18n.KeyFieldFormat, tr.Text(locale, string(f.Field)), f.Value))
		}
	}
	return strings.Join(lines, "\n")
}

// formatHistoryCaption подпись к записи истории: номер и список видов.
func formatHistoryCaption(tr port.Translator, locale entity.Locale, number int, entry entity.HistoryEntry) string {
	lines := []string{
		tr.Text(locale, i18n.KeyHistoryRecord, number),
		tr.Text(locale, i18n.KeyHistoryCaption),
	}
	for _, label := range entry.Detections.Labels() {
		lines = append(lines, "- "+label)
	}
	return strings.Join(lines, "\n")
}

func formatWelcome(tr port.Translator, locale entity.Locale, mode entity.ImageSource) string {
	return strings.Join([]string{
		tr.Text(locale, i18n.KeyPageTitle),
		tr.Text(locale, i18n.KeyIntro),
		"",
		tr.Text(locale, i18n.KeyHelp),
		"",
		formatModePrompt(tr, locale, mode),
	}, "\n")
}

func formatEco(tr port.Translator, locale entity.Locale) string {
	return strings.Join([]string{
		tr.Text(locale, i18n.KeyEcoInfo),
		tr.Text(locale, i18n.KeyEcoDetails),
		"---",
		tr.Text(locale, i18n.KeyFooter),
	}, "\n")
}

// formatModePrompt заголовок и подсказка для активного канала ввода
func formatModePrompt(tr port.Translator, locale entity.Locale, mode entity.ImageSource) string {
	if mode == entity.SourceUpload {
		return tr.Text(locale, i18n.KeyUploadHeader) + "\n" + tr.Text(locale, i18n.KeyUploadHint)
	}
	return tr.Text(locale, i18n.KeyCameraHeader) + "\n" + tr.Text(locale, i18n.KeyCameraHint)
}

func modeLabel(tr port.Translator, locale entity.Locale, mode entity.ImageSource) string {
	if mode == entity.SourceUpload {
		return tr.Text(locale, i18n.KeyUploadLabel)
	}
	return tr.Text(locale, i18n.KeyTakePhotoLabel)
}
