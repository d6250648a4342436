package rpg

import "bytes"

// lcfBuilder assembles container bytes for tests, mirroring the format
// the reader expects.
type lcfBuilder struct {
	bytes.Buffer
}

func newFile(signature string) *lcfBuilder {
	b := &lcfBuilder{}
	b.WriteByte(byte(len(signature)))
	b.WriteString(signature)
	return b
}

func (b *lcfBuilder) writeInt(v int) {
	if v == 0 {
		b.WriteByte(0)
		return
	}
	var groups []byte
	for v > 0 {
		groups = append(groups, byte(v&0x7F))
		v >>= 7
	}
	for i := len(groups) - 1; i > 0; i-- {
		b.WriteByte(groups[i] | 0x80)
	}
	b.WriteByte(groups[0])
}

func (b *lcfBuilder) writeChunk(id int, payload []byte) {
	b.writeInt(id)
	b.writeInt(len(payload))
	b.Write(payload)
}

func (b *lcfBuilder) writeString(id int, s string) {
	b.writeChunk(id, []byte(s))
}

func (b *lcfBuilder) writeIntChunk(id, v int) {
	var payload lcfBuilder
	payload.writeInt(v)
	b.writeChunk(id, payload.Bytes())
}

// endRecord closes a record's field chunk list.
func (b *lcfBuilder) endRecord() {
	b.WriteByte(0)
}

func (b *lcfBuilder) writeCommand(code, indent int, text string, params ...int) {
	b.writeInt(code)
	b.writeInt(indent)
	b.writeInt(len(text))
	b.WriteString(text)
	b.writeInt(len(params))
	for _, p := range params {
		b.writeInt(p)
	}
}
