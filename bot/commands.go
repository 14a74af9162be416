package bot

import (
	"fmt"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

func (t *TgBot) start(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveChat.Id
	user := t.findUser(chatId)
	if user == nil {
		t.plainResponse(chatId, Sanitize(fmt.Sprintf(
			"This chat is not linked to a launchlist user. Ask an administrator to link chat id %d.", chatId)))
		return nil
	}
	if err := t.db.SetTelegramEnabled(chatId, true, user.LogLevel); err != nil {
		t.reportError(chatId, "start", err)
		return nil
	}
	t.loadUsers()
	t.plainResponse(chatId, Sanitize("Alerts enabled. Use /stop to pause them."))
	return nil
}

func (t *TgBot) stop(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveChat.Id
	user := t.findUser(chatId)
	if user == nil {
		return nil
	}
	if err := t.db.SetTelegramEnabled(chatId, false, user.LogLevel); err != nil {
		t.reportError(chatId, "stop", err)
		return nil
	}
	t.loadUsers()
	t.plainResponse(chatId, Sanitize("Alerts paused. Use /start to resume."))
	return nil
}

func (t *TgBot) status(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveChat.Id
	if t.findUser(chatId) == nil {
		return nil
	}
	if t.stats == nil {
		t.plainResponse(chatId, Sanitize("Service core is not connected yet."))
		return nil
	}

	remaining := t.stats.WaitlistRemaining()
	mode, err := t.stats.SiteMode()
	if err != nil {
		t.reportError(chatId, "status", err)
		return nil
	}
	t.plainResponse(chatId, Sanitize(fmt.Sprintf(
		"Site mode: %s\nRemaining slots shown: %d", mode, remaining)))
	return nil
}

func (t *TgBot) help(_ *tgbotapi.Bot, ctx *ext.Context) error {
	t.plainResponse(ctx.EffectiveChat.Id, Sanitize(
		"/status - waitlist counter and site mode\n/start - enable alerts\n/stop - pause alerts"))
	return nil
}
