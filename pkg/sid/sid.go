package sid

import (
	"fmt"

	"github.com/sony/sonyflake"
)

type Sid struct {
	sf *sonyflake.Sonyflake
}

func NewSid() *Sid {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{})
	if sf == nil {
		panic("sonyflake not created")
	}
	return &Sid{sf}
}

// GenString returns a new unique id rendered in base36.
func (s *Sid) GenString() (string, error) {
	id, err := s.sf.NextID()
	if err != nil {
		return "", fmt.Errorf("[sid.GenString] next id: %w", err)
	}
	return intToBase36(id), nil
}

func (s *Sid) GenUint64() (uint64, error) {
	return s.sf.NextID()
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func intToBase36(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [13]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = base36[n%36]
		n /= 36
	}
	return string(buf[i:])
}
