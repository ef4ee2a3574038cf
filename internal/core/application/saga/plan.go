package saga

// Plan is an ordered list of steps to execute for one logical operation,
// e.g. "replace product images". Steps execute strictly in order; once step k
// fails, only steps 1..k-1 are compensated, in reverse order.
//
// A plan is built completely before execution begins: every destination key,
// trash key and record snapshot is computed up front so each step's
// compensation target is fixed.
//
// Cleanup steps run only after every body step has succeeded. They are
// best-effort: a cleanup failure is dead-lettered for out-of-band retry and
// never fails the caller. The trash purge of a media replacement lives here,
// honoring the rule that trash is only permanently deleted after the database
// write referencing the new keys has itself succeeded.
type Plan struct {
	label   string
	steps   []Step
	cleanup []Step
}

// NewPlan creates an empty plan with a label used in logs and dead letters.
func NewPlan(label string) *Plan {
	return &Plan{label: label}
}

// Label returns the plan label.
func (p *Plan) Label() string { return p.label }

// Add appends steps to the plan body.
func (p *Plan) Add(steps ...Step) *Plan {
	p.steps = append(p.steps, steps...)
	return p
}

// AddCleanup appends best-effort post-success steps.
func (p *Plan) AddCleanup(steps ...Step) *Plan {
	p.cleanup = append(p.cleanup, steps...)
	return p
}

// Steps returns the plan body in execution order.
func (p *Plan) Steps() []Step { return p.steps }

// CleanupSteps returns the post-success cleanup steps in execution order.
func (p *Plan) CleanupSteps() []Step { return p.cleanup }
