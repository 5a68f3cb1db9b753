package f1

import "errors"

var (
	// ErrTruncatedBuffer reports a buffer shorter than the schema being
	// decoded requires. The decode fails as a whole; no partially filled
	// record is ever returned.
	ErrTruncatedBuffer = errors.New("f1: buffer shorter than packet schema requires")

	// ErrUnknownPacket reports a header triple with no registered codec,
	// typically an unsupported game or packet version.
	ErrUnknownPacket = errors.New("f1: no codec registered for header triple")

	// ErrUnknownEventCode reports an event packet whose 4-byte string code
	// has no mapped detail shape.
	ErrUnknownEventCode = errors.New("f1: unknown event string code")
)
