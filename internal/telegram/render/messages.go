package render

import (
	"fmt"
	"strings"

	"github.com/nicheroot/wizard-backend/internal/entity"
)

const (
	MsgWelcome = `👋 Hi! I help people find a business direction that actually fits their life.

Tell me a bit about yourself and I'll walk you through six quick either-or questions. At the end you get a personal business blueprint.`

	MsgAskStory = `📝 First, tell me about yourself in a few sentences.

What do you do now, what are you good at, how much time and money could you put into something new?`

	MsgGenerating = `⏳ Thinking about your next question...`

	MsgFinalizing = `🧩 That was the last one! Putting your blueprint together, this can take a minute...`

	MsgBlueprintReady = `✅ Your blueprint is ready! You can download it in a format you like:`

	MsgRestartConfirm = `⚠️ Start over? Your answers so far will be lost.`

	MsgCancelConfirm = `⚠️ End the session? Your answers so far will be lost.`

	MsgSessionFinished = `👋 Session finished.

Send /start whenever you want to try again.`

	MsgNoSession = `There is no active session. Send /start to begin.`

	MsgUseButtons = `Please use the buttons under the question to answer.`

	MsgFinalizingBusy = `🧩 Your blueprint is still being generated, hold on a little longer.`

	ErrGeneric = `❌ Something went wrong. Try again or send /start.`

	ErrGeneration = `😔 I could not come up with the next part. Want to try again?`

	MsgHelp = `🤖 Bot commands:

/start - Start a new session
/restart - Start the interview over
/cancel - End the current session
/help - Show this help

How it works:
1. Describe yourself in free form
2. Answer six either-or questions
3. Get a personal business blueprint
4. Download it as Markdown, PDF or DOCX`
)

// Question renders a question with both options and their summaries.
func Question(q *entity.Question) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "❓ Question %d of %d\n\n%s\n\n", q.Step, entity.MaxSteps, q.Question)

	for _, opt := range q.Options {
		fmt.Fprintf(&sb, "%s) %s\n%s\n\n", opt.Key, opt.Label, opt.Summary)
	}

	sb.WriteString("Pick the option that feels closer, or open the details first.")

	return sb.String()
}

// OptionDetails renders the expanded view of a single option.
func OptionDetails(opt *entity.Option) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s) %s\n\n%s\n", opt.Key, opt.Label, opt.Details.Description)

	if len(opt.Details.Pros) > 0 {
		sb.WriteString("\n👍 Pros:\n")
		for _, p := range opt.Details.Pros {
			fmt.Fprintf(&sb, "• %s\n", p)
		}
	}

	if len(opt.Details.Cons) > 0 {
		sb.WriteString("\n👎 Cons:\n")
		for _, c := range opt.Details.Cons {
			fmt.Fprintf(&sb, "• %s\n", c)
		}
	}

	if opt.Details.Example != "" {
		fmt.Fprintf(&sb, "\n💡 Example: %s\n", opt.Details.Example)
	}

	if opt.Details.WhyThisFits != "" {
		fmt.Fprintf(&sb, "\n🎯 %s\n", opt.Details.WhyThisFits)
	}

	return sb.String()
}

// BlueprintSummary renders a short chat preview of the finished blueprint.
// The full document goes out as a file.
func BlueprintSummary(bp *entity.BusinessBlueprint) string {
	var sb strings.Builder

	title := bp.Title
	if title == "" {
		title = "Your business blueprint"
	}
	fmt.Fprintf(&sb, "🏁 %s\n", title)

	if bp.Subtitle != "" {
		fmt.Fprintf(&sb, "%s\n", bp.Subtitle)
	}

	if bp.RecommendedDirection != "" {
		fmt.Fprintf(&sb, "\n%s\n", bp.RecommendedDirection)
	}

	if len(bp.DayOneActions) > 0 {
		sb.WriteString("\n🚀 Day one:\n")
		for _, a := range bp.DayOneActions {
			fmt.Fprintf(&sb, "• %s\n", a)
		}
	}

	return sb.String()
}
