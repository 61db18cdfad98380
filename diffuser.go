package grover

/*
Diffuser reflects every amplitude about the mean amplitude, the operator
2|s⟩⟨s| - I where |s⟩ is the uniform superposition.
*/
type Diffuser struct{}

/*
Apply performs the inversion about the mean in place. Rounding can move the
norm by a few ulps, so the caller decides whether to renormalize; Apply does
not check the norm itself.
*/
func (Diffuser) Apply(sv *StateVector) {
	n := len(sv.Amplitudes)
	if n == 0 {
		return
	}

	var sum complex128
	for _, amp := range sv.Amplitudes {
		sum += amp
	}
	mean := sum / complex(float64(n), 0)
	twice := 2 * mean

	for i, amp := range sv.Amplitudes {
		sv.Amplitudes[i] = twice - amp
	}
}
