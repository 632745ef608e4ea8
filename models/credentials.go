package models

// AWSCredentials holds the temporary credentials returned by the exchange API.
// Expiration is optional; an empty value means the API did not report one.
type AWSCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      string
}

// RoleEntry is one assumable role parsed from the exchange API's role list.
// FullARN may carry a trailing ",idp-arn" pair as returned by the API;
// RoleARN is always the bare role ARN.
type RoleEntry struct {
	RoleName  string
	AccountID string
	RoleARN   string
	FullARN   string
}
