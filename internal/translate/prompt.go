package translate

import (
	"fmt"
	"strings"

	"sublate/internal/language"
)

// BuildPrompt renders the translation prompt for a batch: instructions, the
// previous context cues, the numbered cues to translate, the following
// context cues, and the required output format.
func BuildPrompt(batch Batch, targetLang string) string {
	name := language.SelfName(targetLang)
	if name == "" {
		name = targetLang
	}

	var b strings.Builder
	fmt.Fprintf(&b, "你是專業的字幕翻譯員。請將以下字幕翻譯成%s。\n", name)
	b.WriteString("保持原意，語句通順自然，適合字幕閱讀。\n\n")

	if len(batch.PrevContext) > 0 {
		b.WriteString("【前文參考（不需翻譯）】\n")
		for _, cue := range batch.PrevContext {
			fmt.Fprintf(&b, "- %s\n", flattenCueText(cue.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString("【需要翻譯的內容】\n")
	for i, cue := range batch.Cues {
		fmt.Fprintf(&b, "%d. %s\n", i+1, flattenCueText(cue.Text))
	}
	b.WriteString("\n")

	if len(batch.NextContext) > 0 {
		b.WriteString("【後文參考（不需翻譯）】\n")
		for _, cue := range batch.NextContext {
			fmt.Fprintf(&b, "- %s\n", flattenCueText(cue.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString("【輸出格式】\n")
	b.WriteString("請只輸出翻譯結果，每行一句，格式如下：\n")
	b.WriteString("1. [翻譯結果1]\n")
	b.WriteString("2. [翻譯結果2]\n")
	b.WriteString("...")

	return b.String()
}

// flattenCueText collapses multi-line cue text onto one line so the numbered
// list stays parseable.
func flattenCueText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
