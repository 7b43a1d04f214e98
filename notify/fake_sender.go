package notify

import "sync"

// FakeSender records sent notices, for tests.
type FakeSender struct {
	m sync.Mutex

	Sent []*Notice
	// When set, every send fails with this error.
	Fail error
}

func (s *FakeSender) Send(notice *Notice, notifyTarget string) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	s.Sent = append(s.Sent, notice)
	return nil
}

func (s *FakeSender) SentNotices() []*Notice {
	s.m.Lock()
	defer s.m.Unlock()
	out := make([]*Notice, len(s.Sent))
	copy(out, s.Sent)
	return out
}
