package catalog

var defaultActions = []Action{
	{ID: "send_email", Label: "Send Email", Params: []string{"to", "subject", "template"}, Description: "Sends an automated email notification"},
	{ID: "generate_doc", Label: "Generate Document", Params: []string{"template", "recipient", "format"}, Description: "Generates a document from a template"},
	{ID: "create_ticket", Label: "Create IT Ticket", Params: []string{"title", "priority", "assignee"}, Description: "Creates a support ticket in the IT system"},
	{ID: "provision_access", Label: "Provision System Access", Params: []string{"system", "role", "expiry"}, Description: "Grants access to internal systems"},
	{ID: "send_slack", Label: "Send Slack Notification", Params: []string{"channel", "message"}, Description: "Sends a message to a Slack channel"},
	{ID: "update_hris", Label: "Update HRIS Record", Params: []string{"field", "value"}, Description: "Updates employee record in HRIS"},
	{ID: "schedule_meeting", Label: "Schedule Meeting", Params: []string{"title", "attendees", "duration"}, Description: "Schedules a calendar meeting"},
	{ID: "assign_training", Label: "Assign Training Module", Params: []string{"module", "deadline"}, Description: "Assigns a training course to the employee"},
}

// Default returns the built-in HR automation actions.
func Default() *Static {
	return New(defaultActions...)
}
