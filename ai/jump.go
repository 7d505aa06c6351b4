package ai

// JumpGate applies the jump rule shared by patrol, chase and stuck recovery:
// a jump fires only when grounded, warranted, not already taken for the
// current obstacle, and permitted by the cooldown.
type JumpGate struct {
	Grounded bool
	CanJump  func() bool
	Jump     func()

	jumped bool
}

// Try fires the jump when the rule allows it and reports whether it did. The
// already-jumped flag clears once grounded with no jump warranted.
func (g *JumpGate) Try(warranted bool) bool {
	if g.Grounded && warranted && !g.jumped && g.canJump() {
		if g.Jump != nil {
			g.Jump()
		}
		g.jumped = true
		return true
	}
	if g.Grounded && !warranted {
		g.jumped = false
	}
	return false
}

// Jumped reports whether a jump was taken for the current obstacle.
func (g *JumpGate) Jumped() bool {
	return g.jumped
}

// Reset clears the already-jumped flag.
func (g *JumpGate) Reset() {
	g.jumped = false
}

func (g *JumpGate) canJump() bool {
	return g.CanJump == nil || g.CanJump()
}
