package timeline

// Classification holds the symmetry facts a ladder diagram decorates.
type Classification struct {
	HasSwitch      bool
	HasSwitchDelay bool
}

// Classify inspects declared symmetries once. Types other than switch and
// switch-delay are ignored.
func Classify(syms []Symmetry) Classification {
	var c Classification
	for _, sym := range syms {
		switch sym.Type {
		case SymSwitch:
			c.HasSwitch = true
		case SymSwitchDelay:
			c.HasSwitchDelay = true
		}
	}
	return c
}

// Classification classifies the symmetries of the timeline.
func (tl *Timeline) Classification() Classification {
	return Classify(tl.symmetries)
}
