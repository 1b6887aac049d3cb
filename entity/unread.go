package entity

type ChannelUnread struct {
	Channel       Channel `json:"channel"`
	Conversations int     `json:"conversations"`
	Unread        int     `json:"unread"`
}

// UnreadSummary aggregates unread counters of active conversations.
type UnreadSummary struct {
	Total    int             `json:"total"`
	Channels []ChannelUnread `json:"channels"`
}

// NewUnreadSummary returns a zeroed summary with one entry per channel.
func NewUnreadSummary() *UnreadSummary {
	s := &UnreadSummary{Channels: make([]ChannelUnread, len(Channels))}
	for i, c := range Channels {
		s.Channels[i].Channel = c
	}
	return s
}

func (s *UnreadSummary) Add(channel Channel, conversations, unread int) {
	for i := range s.Channels {
		if s.Channels[i].Channel == channel {
			s.Channels[i].Conversations += conversations
			s.Channels[i].Unread += unread
			s.Total += unread
			return
		}
	}
}
