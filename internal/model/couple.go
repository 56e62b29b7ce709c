package model

// Member is one half of a couple.
type Member struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// IsZero reports whether the member slot is empty.
func (m Member) IsZero() bool {
	return m.ID == ""
}

// Couple pairs two members. MemberB is zero until the second member links.
type Couple struct {
	ID      string `yaml:"id"`
	MemberA Member `yaml:"member_a"`
	MemberB Member `yaml:"member_b,omitempty"`
}

// Linked reports whether both members are present.
func (c Couple) Linked() bool {
	return !c.MemberA.IsZero() && !c.MemberB.IsZero()
}

// Has reports whether memberID belongs to the couple.
func (c Couple) Has(memberID string) bool {
	if memberID == "" {
		return false
	}
	return memberID == c.MemberA.ID || memberID == c.MemberB.ID
}

// Partner returns the other member of the couple.
func (c Couple) Partner(memberID string) (Member, bool) {
	switch {
	case memberID == "":
		return Member{}, false
	case memberID == c.MemberA.ID:
		return c.MemberB, !c.MemberB.IsZero()
	case memberID == c.MemberB.ID:
		return c.MemberA, true
	}
	return Member{}, false
}

// Names maps member IDs to display names.
func (c Couple) Names() map[string]string {
	names := make(map[string]string, 2)
	for _, m := range []Member{c.MemberA, c.MemberB} {
		if !m.IsZero() {
			names[m.ID] = m.Name
		}
	}
	return names
}
