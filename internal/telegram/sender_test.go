package telegram

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI 记录所有 Bot API 调用，按 chat_id 注入错误
type fakeAPI struct {
	mu       sync.Mutex
	messages []*bot.SendMessageParams
	photos   []*bot.SendPhotoParams
	videos   []*bot.SendVideoParams
	docs     []*bot.SendDocumentParams
	audios   []*bot.SendAudioParams
	voices   []*bot.SendVoiceParams
	errs     map[any]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{errs: map[any]error{}}
}

func (f *fakeAPI) result(chatID any) (*botModels.Message, error) {
	if err := f.errs[chatID]; err != nil {
		return nil, err
	}
	return &botModels.Message{ID: 1}, nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*botModels.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, params)
	return f.result(params.ChatID)
}

func (f *fakeAPI) SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*botModels.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos = append(f.photos, params)
	return f.result(params.ChatID)
}

func (f *fakeAPI) SendVideo(ctx context.Context, params *bot.SendVideoParams) (*botModels.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos = append(f.videos, params)
	return f.result(params.ChatID)
}

func (f *fakeAPI) SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*botModels.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, params)
	return f.result(params.ChatID)
}

func (f *fakeAPI) SendAudio(ctx context.Context, params *bot.SendAudioParams) (*botModels.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audios = append(f.audios, params)
	return f.result(params.ChatID)
}

func (f *fakeAPI) SendVoice(ctx context.Context, params *bot.SendVoiceParams) (*botModels.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voices = append(f.voices, params)
	return f.result(params.ChatID)
}

// messagesTo 返回发往指定 chat 的文本消息
func (f *fakeAPI) messagesTo(chatID any) []*bot.SendMessageParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*bot.SendMessageParams
	for _, m := range f.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

func fileData(t *testing.T, f botModels.InputFile) string {
	t.Helper()
	s, ok := f.(*botModels.InputFileString)
	require.True(t, ok, "expected InputFileString, got %T", f)
	return s.Data
}

func TestBotSenderMapsParams(t *testing.T) {
	api := newFakeAPI()
	s := newBotSender(api)
	ctx := context.Background()

	require.NoError(t, s.SendText(ctx, "@c", "hola"))
	require.NoError(t, s.SendPhoto(ctx, "@c", "photo-id", "cap"))
	require.NoError(t, s.SendVideo(ctx, "@c", "video-id", ""))
	require.NoError(t, s.SendDocument(ctx, "@c", "doc-id", "doc"))
	require.NoError(t, s.SendAudio(ctx, "@c", "audio-id", ""))
	require.NoError(t, s.SendVoice(ctx, "-100123", "voice-id", "nota"))

	require.Len(t, api.messages, 1)
	assert.Equal(t, "@c", api.messages[0].ChatID)
	assert.Equal(t, "hola", api.messages[0].Text)
	assert.Empty(t, api.messages[0].ParseMode)

	require.Len(t, api.photos, 1)
	assert.Equal(t, "photo-id", fileData(t, api.photos[0].Photo))
	assert.Equal(t, "cap", api.photos[0].Caption)

	require.Len(t, api.videos, 1)
	assert.Equal(t, "video-id", fileData(t, api.videos[0].Video))
	assert.Empty(t, api.videos[0].Caption)

	require.Len(t, api.docs, 1)
	assert.Equal(t, "doc-id", fileData(t, api.docs[0].Document))
	assert.Equal(t, "doc", api.docs[0].Caption)

	require.Len(t, api.audios, 1)
	assert.Equal(t, "audio-id", fileData(t, api.audios[0].Audio))

	require.Len(t, api.voices, 1)
	assert.Equal(t, "-100123", api.voices[0].ChatID)
	assert.Equal(t, "voice-id", fileData(t, api.voices[0].Voice))
	assert.Equal(t, "nota", api.voices[0].Caption)
}

func TestBotSenderReturnsPlatformDescription(t *testing.T) {
	api := newFakeAPI()
	api.errs["@gone"] = fmt.Errorf("%w, Bad Request: chat not found", bot.ErrorBadRequest)

	err := newBotSender(api).SendText(context.Background(), "@gone", "x")
	require.Error(t, err)
	assert.Equal(t, "Bad Request: chat not found", err.Error())
	assert.ErrorIs(t, err, bot.ErrorBadRequest)
}

func TestWrapSendError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "forbidden",
			err:  fmt.Errorf("%w, Forbidden: bot is not a member of the channel chat", bot.ErrorForbidden),
			want: "Forbidden: bot is not a member of the channel chat",
		},
		{
			name: "unauthorized",
			err:  fmt.Errorf("%w, Unauthorized", bot.ErrorUnauthorized),
			want: "Unauthorized",
		},
		{
			name: "not found",
			err:  fmt.Errorf("%w, Not Found", bot.ErrorNotFound),
			want: "Not Found",
		},
		{
			name: "generic error unchanged",
			err:  errors.New("dial tcp: i/o timeout"),
			want: "dial tcp: i/o timeout",
		},
		{
			name: "sentinel without description unchanged",
			err:  bot.ErrorBadRequest,
			want: bot.ErrorBadRequest.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapSendError(tt.err)
			require.Error(t, got)
			assert.Equal(t, tt.want, got.Error())
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.NoError(t, wrapSendError(nil))
}
