package models

import (
	botModels "github.com/go-telegram/bot/models"
)

// ContentKind 消息内容类型
type ContentKind string

// 内容类型常量
const (
	ContentText        ContentKind = "text"
	ContentPhoto       ContentKind = "photo"
	ContentVideo       ContentKind = "video"
	ContentDocument    ContentKind = "document"
	ContentAudio       ContentKind = "audio"
	ContentVoice       ContentKind = "voice"
	ContentUnsupported ContentKind = "unsupported"
)

// Content 待转发的消息内容
// 由 ContentFromMessage 在接收时构造一次，Kind 唯一决定使用哪个发送接口
type Content struct {
	Kind    ContentKind
	Text    string // 仅 ContentText
	FileID  string // 媒体类型：已上传文件的 file_id
	Caption string // 媒体说明文字，空表示无
}

// ContentFromMessage 将 Telegram 消息归类为待转发内容
// 优先级: 文本 > 图片 > 视频 > 文件 > 音频 > 语音，均不匹配则为 ContentUnsupported
func ContentFromMessage(msg *botModels.Message) Content {
	if msg == nil {
		return Content{Kind: ContentUnsupported}
	}

	switch {
	case msg.Text != "":
		return Content{Kind: ContentText, Text: msg.Text}
	case len(msg.Photo) > 0:
		// 取最大尺寸
		return media(ContentPhoto, msg.Photo[len(msg.Photo)-1].FileID, msg.Caption)
	case msg.Video != nil:
		return media(ContentVideo, msg.Video.FileID, msg.Caption)
	case msg.Document != nil:
		return media(ContentDocument, msg.Document.FileID, msg.Caption)
	case msg.Audio != nil:
		return media(ContentAudio, msg.Audio.FileID, msg.Caption)
	case msg.Voice != nil:
		return media(ContentVoice, msg.Voice.FileID, msg.Caption)
	default:
		return Content{Kind: ContentUnsupported}
	}
}

func media(kind ContentKind, fileID, caption string) Content {
	return Content{Kind: kind, FileID: fileID, Caption: caption}
}

// IsSupported 是否为可转发的内容类型
func (c Content) IsSupported() bool {
	switch c.Kind {
	case ContentText, ContentPhoto, ContentVideo, ContentDocument, ContentAudio, ContentVoice:
		return true
	default:
		return false
	}
}
