package presenters

import (
	"strconv"
	"strings"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
)

// ModalStyle selects how a modal covers its host.
type ModalStyle int

const (
	ModalAutomatic ModalStyle = iota
	ModalFullScreen
	ModalPageSheet
	ModalFormSheet
	ModalOverFullScreen
)

var modalStyleNames = map[ModalStyle]string{
	ModalAutomatic:      "automatic",
	ModalFullScreen:     "fullScreen",
	ModalPageSheet:      "pageSheet",
	ModalFormSheet:      "formSheet",
	ModalOverFullScreen: "overFullScreen",
}

func (s ModalStyle) String() string {
	if name, ok := modalStyleNames[s]; ok {
		return name
	}
	return "ModalStyle(" + strconv.Itoa(int(s)) + ")"
}

// ParseModalStyle accepts either the numeric value or the name, case
// insensitively.
func ParseModalStyle(raw string) (ModalStyle, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		s := ModalStyle(n)
		_, ok := modalStyleNames[s]
		return s, ok
	}
	for s, name := range modalStyleNames {
		if strings.EqualFold(name, raw) {
			return s, true
		}
	}
	return ModalAutomatic, false
}

// modalStyle reads the modalPresentationStyle option, falling back to the
// default for missing or unknown values.
func modalStyle(opts route.Options) ModalStyle {
	def := ModalStyle(constants.DefaultModalStyle)
	if !opts.Has(constants.OptionModalPresentationStyle) {
		return def
	}
	s, ok := ParseModalStyle(opts.String(constants.OptionModalPresentationStyle, ""))
	if !ok {
		return def
	}
	return s
}
