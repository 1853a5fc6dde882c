package sortedlist

import (
	"encoding/binary"
	"strconv"

	"github.com/aacfactory/errors"
	"github.com/cespare/xxhash/v2"
	"github.com/valyala/bytebufferpool"
)

const (
	digestFlushSize = 4096
)

// Digest returns a 64-bit fingerprint of the elements of list in stored order.
// Two lists holding the same elements in the same order have the same digest.
func Digest[T any](list *List[T], encoder Encoder[T]) (code uint64, err error) {
	if encoder == nil {
		err = errors.ServiceError("sortedlist digest failed").WithCause(errors.ServiceError("encoder is required"))
		return
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	hash := xxhash.New()
	rank := 0
	for _, bucket := range list.data {
		for _, value := range bucket {
			// reserve the length prefix, the element is appended right after it
			start := len(buf.B)
			buf.B = append(buf.B, 0, 0, 0, 0)
			p, encodeErr := encoder.Encode(buf.B, value)
			if encodeErr != nil {
				err = errors.ServiceError("sortedlist digest failed").WithCause(encodeErr).WithMeta("rank", strconv.Itoa(rank))
				return
			}
			buf.B = p
			binary.BigEndian.PutUint32(buf.B[start:], uint32(len(buf.B)-start-4))
			if buf.Len() >= digestFlushSize {
				_, _ = hash.Write(buf.Bytes())
				buf.Reset()
			}
			rank++
		}
	}
	if buf.Len() > 0 {
		_, _ = hash.Write(buf.Bytes())
		buf.Reset()
	}
	code = hash.Sum64()
	return
}
