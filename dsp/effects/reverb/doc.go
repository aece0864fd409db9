// Package reverb provides reverb processors built on the modal resonator
// bank.
//
// ModalReverb renders a table of decaying modes, by default the dispersive
// spring of modal.SpringTable, and can add vibrato to the lowest modes.
package reverb
