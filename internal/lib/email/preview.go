package email

// PreviewData contains sample template data for local preview/testing.
//
//	PreviewData[TemplateHostWelcome]["HostName"] == "Maria"
var PreviewData = map[Template]map[string]string{
	TemplateHostWelcome: {
		"HostName": "Maria",
		"Username": "maria.lisbon",
	},
}
