package mailer

import "fmt"

const launchSubject = "We're live — your spot is ready"

const launchEmailTemplate = `<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
<h2>We're live!</h2>
<p>Hi,</p>
<p>You joined our waitlist with <b>%s</b>, and today is the day: the product
is open. Your reserved spot is waiting.</p>
<p><a href="%s" style="display:inline-block;padding:12px 24px;background:#111;color:#fff;text-decoration:none;border-radius:6px;">Create your account</a></p>
<p>If the button doesn't work, copy this link into your browser:<br>%s</p>
<p>Thanks for waiting with us.</p>
</body>
</html>`

func launchEmailHTML(email, signupURL string) string {
	return fmt.Sprintf(launchEmailTemplate, email, signupURL, signupURL)
}
