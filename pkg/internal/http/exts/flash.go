package exts

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

type FlashMessage struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const flashSessionKey = "flashes"

// Flash queues a one-shot notice for the next rendered page.
func Flash(c *fiber.Ctx, level, message string) {
	sess, err := Sessions.Get(c)
	if err != nil {
		log.Warn().Err(err).Msg("An error occurred when loading session for flash message.")
		return
	}

	flashes := decodeFlashes(sess.Get(flashSessionKey))
	flashes = append(flashes, FlashMessage{Level: level, Message: message})

	raw, _ := jsoniter.MarshalToString(flashes)
	sess.Set(flashSessionKey, raw)
	if err := sess.Save(); err != nil {
		log.Warn().Err(err).Msg("An error occurred when saving flash message.")
	}
}

// TakeFlashes drains the queued notices.
func TakeFlashes(c *fiber.Ctx) []FlashMessage {
	sess, err := Sessions.Get(c)
	if err != nil {
		return nil
	}

	flashes := decodeFlashes(sess.Get(flashSessionKey))
	if len(flashes) > 0 {
		sess.Delete(flashSessionKey)
		_ = sess.Save()
	}

	return flashes
}

func decodeFlashes(raw any) []FlashMessage {
	var flashes []FlashMessage
	if encoded, ok := raw.(string); ok {
		_ = jsoniter.UnmarshalFromString(encoded, &flashes)
	}
	return flashes
}
