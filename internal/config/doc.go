// Package config loads the Jira connection settings.
//
// The file is JSON by default (comments are allowed) or YAML when its name
// ends in .yaml or .yml:
//
//	{
//	  // Jira Cloud site or Jira Server base URL
//	  "jira_url": "https://example.atlassian.net",
//	  "jira_user": "me@example.com",
//	  "jira_key": "api-token"
//	}
//
// "jira_password" is accepted in place of "jira_key" for files written by
// older versions.
package config
