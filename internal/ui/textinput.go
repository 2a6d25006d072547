package ui

import (
	"image"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	inputTextSize = 16
	inputPad      = 8
)

// TextInput is a single-line editable text box with a cursor.
type TextInput struct {
	Rect        image.Rectangle
	Style       TextInputStyle
	Text        string
	Placeholder string
	cursor      int
	focused     bool
	anim        float64
	blink       int
	repeat      map[ebiten.Key]int
	chars       []rune
}

// NewTextInput constructs a text input with the given rectangle and style.
func NewTextInput(r image.Rectangle, style TextInputStyle) *TextInput {
	return &TextInput{Rect: r, Style: style, repeat: make(map[ebiten.Key]int)}
}

// Focused reports whether the input currently has focus.
func (t *TextInput) Focused() bool { return t.focused }

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() {
	t.focused = true
	t.anim = 1
	t.blink = 0
}

// SetText sets the current text and moves the cursor to the end.
func (t *TextInput) SetText(s string) {
	t.Text = s
	t.cursor = utf8.RuneCountInString(s)
}

// Value returns the current text value.
func (t *TextInput) Value() string { return t.Text }

// Update processes mouse and keyboard input. A press outside the box drops
// focus. It reports whether the mouse press landed on the box.
func (t *TextInput) Update() bool {
	mx, my := cursorPosition()
	consumed := false
	if isMouseButtonPressed(ebiten.MouseButtonLeft) {
		if image.Pt(mx, my).In(t.Rect) {
			t.Focus()
			consumed = true
		} else {
			t.focused = false
		}
	}

	if !t.focused {
		t.blink = 0
		t.anim *= 0.85
		if t.anim < 0.01 {
			t.anim = 0
		}
		return consumed
	}

	t.blink = (t.blink + 1) % 60

	t.chars = appendInputChars(t.chars[:0])
	for _, r := range t.chars {
		if r == '\n' || r == '\r' {
			continue
		}
		bi := byteIndex(t.Text, t.cursor)
		t.Text = t.Text[:bi] + string(r) + t.Text[bi:]
		t.cursor++
	}

	if t.keyRepeat(ebiten.KeyBackspace) && t.cursor > 0 {
		bi := byteIndex(t.Text, t.cursor)
		prev := byteIndex(t.Text, t.cursor-1)
		t.Text = t.Text[:prev] + t.Text[bi:]
		t.cursor--
	}
	if t.keyRepeat(ebiten.KeyArrowLeft) && t.cursor > 0 {
		t.cursor--
	}
	if t.keyRepeat(ebiten.KeyArrowRight) && t.cursor < utf8.RuneCountInString(t.Text) {
		t.cursor++
	}
	return consumed
}

// keyRepeat fires on the first held frame, then every third frame after a
// quarter-second delay.
func (t *TextInput) keyRepeat(k ebiten.Key) bool {
	if !isKeyPressed(k) {
		t.repeat[k] = 0
		return false
	}
	t.repeat[k]++
	d := t.repeat[k]
	return d == 1 || d > 15 && (d-15)%3 == 0
}

// byteIndex returns the byte index of rune i in s.
func byteIndex(s string, i int) int {
	if i <= 0 {
		return 0
	}
	bi := 0
	for n := 0; n < i && bi < len(s); n++ {
		_, sz := utf8.DecodeRuneInString(s[bi:])
		bi += sz
	}
	return bi
}

// visibleText drops leading runes until the rest fits in the box. It
// returns the shown text and the index of its first rune.
func (t *TextInput) visibleText(f text.Face) (string, int) {
	maxW := float64(t.Rect.Dx() - inputPad*2)
	start := 0
	s := t.Text
	for s != "" && textWidth(s, f) > maxW {
		_, sz := utf8.DecodeRuneInString(s)
		s = s[sz:]
		start++
	}
	return s, start
}

func (t *TextInput) Draw(dst *ebiten.Image) {
	t.Style.Draw(dst, t.Rect, t.anim)
	f := sansFace(inputTextSize)
	x := float64(t.Rect.Min.X + inputPad)
	cy := float64(t.Rect.Min.Y + t.Rect.Dy()/2)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, cy)
	op.SecondaryAlign = text.AlignCenter
	txt, start := t.visibleText(f)
	if txt == "" && t.Placeholder != "" {
		op.ColorScale.ScaleWithColor(colMuted)
		text.Draw(dst, t.Placeholder, f, op)
	} else {
		op.ColorScale.ScaleWithColor(colLabel)
		text.Draw(dst, txt, f, op)
	}

	if t.focused && t.blink < 30 {
		cx := x + textWidth(txt[:byteIndex(txt, t.cursor-start)], f)
		drawLine(dst, cx, cy-inputTextSize/2, cx, cy+inputTextSize/2, colLabel)
	}
}
