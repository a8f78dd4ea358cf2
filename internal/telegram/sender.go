package telegram

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// botAPI Bot API 中本服务用到的部分，*bot.Bot 实现该接口
type botAPI interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*botModels.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*botModels.Message, error)
	SendVideo(ctx context.Context, params *bot.SendVideoParams) (*botModels.Message, error)
	SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*botModels.Message, error)
	SendAudio(ctx context.Context, params *bot.SendAudioParams) (*botModels.Message, error)
	SendVoice(ctx context.Context, params *bot.SendVoiceParams) (*botModels.Message, error)
}

// botSender 基于 Bot API 的转发发送实现
// 媒体均按已上传的 file_id 重发，不重新上传文件
type botSender struct {
	api botAPI
}

func newBotSender(api botAPI) *botSender {
	return &botSender{api: api}
}

func (s *botSender) SendText(ctx context.Context, destination string, text string) error {
	_, err := s.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: destination,
		Text:   text,
	})
	return wrapSendError(err)
}

func (s *botSender) SendPhoto(ctx context.Context, destination string, fileID string, caption string) error {
	_, err := s.api.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  destination,
		Photo:   &botModels.InputFileString{Data: fileID},
		Caption: caption,
	})
	return wrapSendError(err)
}

func (s *botSender) SendVideo(ctx context.Context, destination string, fileID string, caption string) error {
	_, err := s.api.SendVideo(ctx, &bot.SendVideoParams{
		ChatID:  destination,
		Video:   &botModels.InputFileString{Data: fileID},
		Caption: caption,
	})
	return wrapSendError(err)
}

func (s *botSender) SendDocument(ctx context.Context, destination string, fileID string, caption string) error {
	_, err := s.api.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   destination,
		Document: &botModels.InputFileString{Data: fileID},
		Caption:  caption,
	})
	return wrapSendError(err)
}

func (s *botSender) SendAudio(ctx context.Context, destination string, fileID string, caption string) error {
	_, err := s.api.SendAudio(ctx, &bot.SendAudioParams{
		ChatID:  destination,
		Audio:   &botModels.InputFileString{Data: fileID},
		Caption: caption,
	})
	return wrapSendError(err)
}

func (s *botSender) SendVoice(ctx context.Context, destination string, fileID string, caption string) error {
	_, err := s.api.SendVoice(ctx, &bot.SendVoiceParams{
		ChatID:  destination,
		Voice:   &botModels.InputFileString{Data: fileID},
		Caption: caption,
	})
	return wrapSendError(err)
}

// sendError 平台错误，Error() 仅返回平台给出的描述
type sendError struct {
	err         error
	description string
}

func (e *sendError) Error() string { return e.description }

func (e *sendError) Unwrap() error { return e.err }

// platformSentinels go-telegram/bot 以 "%w, 描述" 形式包装的错误
var platformSentinels = []error{
	bot.ErrorForbidden,
	bot.ErrorBadRequest,
	bot.ErrorUnauthorized,
	bot.ErrorNotFound,
}

// wrapSendError 去掉库的哨兵前缀，保留平台原始描述
func wrapSendError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, sentinel := range platformSentinels {
		if !errors.Is(err, sentinel) {
			continue
		}
		prefix := sentinel.Error() + ", "
		if desc, ok := strings.CutPrefix(msg, prefix); ok && desc != "" {
			return &sendError{err: err, description: desc}
		}
	}

	return err
}
