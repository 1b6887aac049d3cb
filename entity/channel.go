package entity

import (
	"GolfInbox/internal/lib/validate"
	"errors"
)

// Channel is the external messaging surface a conversation belongs to.
type Channel string

const (
	ChannelLine      Channel = "line"
	ChannelWebsite   Channel = "website"
	ChannelFacebook  Channel = "facebook"
	ChannelInstagram Channel = "instagram"
	ChannelWhatsApp  Channel = "whatsapp"
)

// Channels lists every channel in display order.
var Channels = []Channel{
	ChannelLine,
	ChannelWebsite,
	ChannelFacebook,
	ChannelInstagram,
	ChannelWhatsApp,
}

// Source is the storage family holding a channel's conversations and messages.
type Source string

const (
	SourceLine    Source = "line"
	SourceWebsite Source = "website"
	SourceMeta    Source = "meta"
)

var Sources = []Source{SourceLine, SourceWebsite, SourceMeta}

var (
	ErrUnknownChannel = errors.New("unknown channel")
	ErrUnknownSource  = errors.New("unknown message source")
)

// ParseChannel matches the enumerated set exactly, case included.
func ParseChannel(value string) (Channel, error) {
	if err := validate.Var(value, "required,oneof=line website facebook instagram whatsapp"); err != nil {
		return "", ErrUnknownChannel
	}
	return Channel(value), nil
}

func ParseSource(value string) (Source, error) {
	if err := validate.Var(value, "required,oneof=line website meta"); err != nil {
		return "", ErrUnknownSource
	}
	return Source(value), nil
}

func (c Channel) Source() Source {
	switch c {
	case ChannelLine:
		return SourceLine
	case ChannelWebsite:
		return SourceWebsite
	default:
		return SourceMeta
	}
}
