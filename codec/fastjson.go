package codec

import (
	"github.com/bytedance/sonic"
)

// FastJSON Codec handles JSON encoding through the sonic runtime. It
// is wire compatible with the JSON codec and considerably faster on
// hot consume paths, at the price of a bigger binary.
func FastJSON() Codec {
	return &codecFunc{sonic.ConfigStd.Marshal, sonic.ConfigStd.Unmarshal}
}
