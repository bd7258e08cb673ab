// Package degradation models capacity fade of a lithium-iron-phosphate pack
// as a function of its full charge/discharge cycle count.
//
// The model is a closed-form curve. State of health starts at a nameplate
// overcapacity (InitialSOH, 1.05 by default) and decays towards the
// configured end-of-life fraction following
//
//	soh(i) = InitialSOH - (InitialSOH - EoL) * (i/N)^FadeExponent
//
// so that fade is slow at first and accelerates towards end of life. Usable
// capacity scales the state of health by the pack capacity and the depth of
// discharge. All functions are pure and safe for concurrent use.
package degradation
