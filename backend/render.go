package backend

import (
	"context"
	"fmt"
)

// Display messages for every outcome kind. MsgBackendTimeout and
// MsgNetworkErr are also reused by the bot's /raw and /ping commands.
const (
	MsgBackendTimeout = "⚠️ Backend timed out. Try again shortly."
	MsgNetworkErr     = "❌ Network error. Backend unreachable."

	msgBackendErr    = "❌ Backend error %d:\n%s"
	msgSuccessNoText = "✅ Success, but no simple text field found:\n%s"
	msgPollTimeout   = "⚠️ Backend timed out waiting for result (last status=%s)."
	msgCanceled      = "⚠️ Request cancelled before the backend finished."
	msgUnexpected    = "❌ Unexpected error: %v"
)

// Render converts a tagged outcome into the string shown to the user. Every
// kind maps to a message; callers never see an error value.
func Render(out Outcome) string {
	switch out.Kind {
	case Completed:
		return out.Text
	case SuccessNoText:
		return fmt.Sprintf(msgSuccessNoText, out.Body)
	case SubmissionRejected:
		return fmt.Sprintf(msgBackendErr, out.StatusCode, out.Body)
	case SubmissionMalformed:
		return fmt.Sprintf(msgSuccessNoText, "(no execution_id)\n"+out.Body)
	case PollTimeout:
		return fmt.Sprintf(msgPollTimeout, out.LastStatus)
	case NetworkTimeout:
		return MsgBackendTimeout
	case NetworkUnreachable:
		return fmt.Sprintf("%s\n\nDetails: %v", MsgNetworkErr, out.Err)
	case Canceled:
		return msgCanceled
	default:
		return fmt.Sprintf(msgUnexpected, out.Err)
	}
}

// RunJobText is the submit-and-wait operation the rest of the system calls:
// one prompt in, one display string out.
func (c *Client) RunJobText(ctx context.Context, prompt string, userId int64) string {
	return Render(c.RunJob(ctx, prompt, userId))
}
