// Package notify carries out-of-band notifications: removal notices emitted
// by the verification pass and forwarded links for freshly added games.
// Notices travel over the in-process event bus so that whether a removal
// succeeded is decoupled from whether its notification got delivered.
package notify

import "encoding/json"

const (
	// TopicNotice is the event bus topic all notices are published on.
	TopicNotice = "hub.notice"

	KindRemoval   = "removal"
	KindGameAdded = "game_added"
)

type Notice struct {
	NoticeId string `json:"notice_id"`
	Kind     string `json:"kind"`

	GameId   string `json:"game_id"`
	GameName string `json:"game_name"`

	// Identity of the entry's submitter; removal notices are addressed to
	// them.
	SubmitterId   string `json:"submitter_id"`
	SubmitterName string `json:"submitter_name"`

	Reason    string `json:"reason,omitempty"`
	EmittedAt int64  `json:"emitted_at"`
}

func (n *Notice) Marshal() ([]byte, error) {
	return json.Marshal(n)
}

func UnmarshalNotice(data []byte) (*Notice, error) {
	n := Notice{}
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Sender delivers one notice to the configured notify target. Delivery is
// best effort; a failed send is logged by the caller and never retried into
// the removal path.
type Sender interface {
	Send(notice *Notice, notifyTarget string) error
}
