package entities

// OrderState is the lifecycle state of an order.
//
// Lifecycle:
//
//	recibido -> en_diseno -> aprobado -> en_proceso -> terminado -> entregado
//
// with cancellation from the early states and reactivation of cancelled
// orders back to recibido. entregado has no outgoing transitions.
type OrderState string

const (
	StateRecibido  OrderState = "recibido"
	StateEnDiseno  OrderState = "en_diseno"
	StateAprobado  OrderState = "aprobado"
	StateEnProceso OrderState = "en_proceso"
	StateTerminado OrderState = "terminado"
	StateEntregado OrderState = "entregado"
	StateCancelado OrderState = "cancelado"
)

// InitialState is the state every new order starts in.
const InitialState = StateRecibido

// AllStates lists the closed set of states in lifecycle order.
var AllStates = []OrderState{
	StateRecibido,
	StateEnDiseno,
	StateAprobado,
	StateEnProceso,
	StateTerminado,
	StateEntregado,
	StateCancelado,
}

var transitions = map[OrderState][]OrderState{
	StateRecibido:  {StateEnDiseno, StateCancelado},
	StateEnDiseno:  {StateAprobado, StateRecibido, StateCancelado},
	StateAprobado:  {StateEnProceso, StateEnDiseno, StateCancelado},
	StateEnProceso: {StateTerminado, StateAprobado},
	StateTerminado: {StateEntregado, StateEnProceso},
	StateEntregado: {},
	StateCancelado: {StateRecibido},
}

// StateInfo is the display metadata of a state.
type StateInfo struct {
	State       OrderState `json:"state"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Terminal    bool       `json:"terminal"`
}

var stateInfo = map[OrderState]StateInfo{
	StateRecibido:  {State: StateRecibido, Label: "Recibido", Description: "Pedido registrado, pendiente de diseño"},
	StateEnDiseno:  {State: StateEnDiseno, Label: "En diseño", Description: "Diseño en preparación o en revisión con el cliente"},
	StateAprobado:  {State: StateAprobado, Label: "Aprobado", Description: "Diseño aprobado por el cliente, listo para producción"},
	StateEnProceso: {State: StateEnProceso, Label: "En proceso", Description: "Bordado en producción"},
	StateTerminado: {State: StateTerminado, Label: "Terminado", Description: "Trabajo terminado, pendiente de entrega"},
	StateEntregado: {State: StateEntregado, Label: "Entregado", Description: "Pedido entregado al cliente", Terminal: true},
	StateCancelado: {State: StateCancelado, Label: "Cancelado", Description: "Pedido cancelado; puede reactivarse como recibido"},
}

func (s OrderState) IsKnown() bool {
	_, ok := transitions[s]
	return ok
}

// LookupTransitions returns the legal next states of s. Unknown states get
// the recibido row and known=false so the caller can report the condition.
func LookupTransitions(s OrderState) (next []OrderState, known bool) {
	row, ok := transitions[s]
	if !ok {
		row = transitions[StateRecibido]
	}
	out := make([]OrderState, len(row))
	copy(out, row)
	return out, ok
}

// LegalNextStates returns the ordered transition row for s.
func (s OrderState) LegalNextStates() []OrderState {
	next, _ := LookupTransitions(s)
	return next
}

func (s OrderState) CanTransitionTo(target OrderState) bool {
	for _, n := range s.LegalNextStates() {
		if n == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns a *TransitionError when target is not reachable
// from s.
func (s OrderState) ValidateTransition(target OrderState) error {
	if !target.IsKnown() || !s.CanTransitionTo(target) {
		return &TransitionError{From: s, To: target}
	}
	return nil
}

// Info returns the display metadata of s. Unknown states are labelled with
// their raw value.
func (s OrderState) Info() StateInfo {
	if info, ok := stateInfo[s]; ok {
		return info
	}
	return StateInfo{State: s, Label: string(s), Description: "Estado desconocido"}
}

// NextStateInfos is LegalNextStates decorated with display metadata.
func (s OrderState) NextStateInfos() []StateInfo {
	next := s.LegalNextStates()
	out := make([]StateInfo, 0, len(next))
	for _, n := range next {
		out = append(out, n.Info())
	}
	return out
}
