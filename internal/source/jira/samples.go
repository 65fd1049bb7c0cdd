package jira

// SampleRecord returns a representative raw record for a kind, shaped like
// the upstream REST payload. Used by dry runs and tests; returns nil for an
// unknown kind.
func SampleRecord(kind string) map[string]any {
	switch kind {
	case KindProject:
		return map[string]any{
			"id":             "10000",
			"key":            "ABC",
			"name":           "Project A",
			"self":           "https://example.atlassian.net/rest/api/2/project/10000",
			"projectTypeKey": "software",
			"lead": map[string]any{
				"accountId":   "5d1234abcd",
				"displayName": "Ada Lovelace",
			},
			"insight": map[string]any{
				"totalIssueCount": 42,
			},
		}
	case KindUser:
		return map[string]any{
			"accountId":    "5d1234abcd",
			"displayName":  "Ada Lovelace",
			"emailAddress": "ada@example.com",
			"accountType":  "atlassian",
			"active":       true,
			"self":         "https://example.atlassian.net/rest/api/2/user?accountId=5d1234abcd",
			"avatarUrls": map[string]any{
				"48x48": "https://avatar.example.com/ada/48",
				"24x24": "https://avatar.example.com/ada/24",
			},
		}
	case KindIssue:
		return map[string]any{
			"id":   "10042",
			"key":  "ABC-1",
			"self": "https://example.atlassian.net/rest/api/2/issue/10042",
			"fields": map[string]any{
				"summary": "Fix bug",
				"status": map[string]any{
					"name": "In Progress",
				},
				"issuetype": map[string]any{
					"name": "Bug",
				},
				"priority": map[string]any{
					"name": "High",
				},
				"project": map[string]any{
					"key": "ABC",
				},
				"assignee": map[string]any{
					"accountId":   "5d1234abcd",
					"displayName": "Ada Lovelace",
				},
				"reporter": map[string]any{
					"accountId":   "5d5678efgh",
					"displayName": "Grace Hopper",
				},
				"labels":  []any{"infra", "bug"},
				"created": "2026-08-01T10:00:00.000+0000",
				"updated": "2026-08-02T12:30:00.000+0000",
				"subtasks": []any{
					map[string]any{"key": "ABC-2"},
					map[string]any{"key": "ABC-3"},
				},
			},
		}
	}
	return nil
}
