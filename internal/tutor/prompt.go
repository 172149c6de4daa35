package tutor

import (
	"fmt"
	"strings"

	"github.com/notetutor/notetutor/store"
)

// depthStyle maps the answer-depth setting to its style instruction.
// Unknown depth values map to an empty instruction.
var depthStyle = map[store.Depth]string{
	store.DepthShort:    "Răspunde scurt în 2-3 rânduri.",
	store.DepthMedium:   "Răspunde moderat, 4-8 rânduri.",
	store.DepthDetailed: "Explică detaliat și pas cu pas, 8-15 rânduri.",
}

const promptTemplate = `Ești un tutor AI care ajută utilizatorul să înțeleagă topicul: **%s**.

Descriere topic:
%s

Titlurile notelor din acest topic:
%s

Fragment notă selectată:
%s

Instrucțiuni stil:
- Răspunde în limba: %s
- %s
- Fii clar, logic și explicativ.
`

// ComposePrompt builds the system instruction for a tutor turn. It is a
// pure function: identical inputs always produce identical output. An
// empty title list and an empty note fragment are both valid.
func ComposePrompt(topicName, topicDescription string, noteTitles []string, selectedNoteContent string, setting *store.TutorSetting) string {
	lang := setting.Language
	if lang == "" {
		lang = "RO"
	}
	depth := setting.Depth
	if depth == "" {
		depth = store.DepthMedium
	}
	return fmt.Sprintf(promptTemplate,
		topicName,
		topicDescription,
		strings.Join(noteTitles, ", "),
		selectedNoteContent,
		lang,
		depthStyle[depth],
	)
}
