package export

import "fmt"

var (
	ErrNoSenderHandle = fmt.Errorf("pinned message sender has no public handle")
)
