package lint

var DefaultDiagnostics = []Diagnostics{
	DiagnosticsGoalSyntax{},
	DiagnosticsGoalPorts{},
	DiagnosticsGoalRegion{},
	DiagnosticsPortKinds{},
	DiagnosticsPremiseLabels{},
	DiagnosticsShortCircuit{},
	DiagnosticsConvergence{},
	DiagnosticsUnconnectedInputs{},
}
