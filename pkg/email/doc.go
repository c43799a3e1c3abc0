// Package email provides a provider-agnostic interface for sending
// transactional emails, used for the password reset flow.
//
// The package is built around the EmailSender interface, allowing different
// email providers to be swapped without changing application code:
//   - NewPostmarkClient for production delivery via Postmark
//   - NewDevSender for local development (saves emails to disk)
//
// All implementations validate email parameters before sending.
//
//	cfg := email.Config{
//	    PostmarkServerToken:  "your-server-token",
//	    PostmarkAccountToken: "your-account-token",
//	    SenderEmail:          "noreply@example.com",
//	    SupportEmail:         "support@example.com",
//	}
//	client, err := email.NewPostmarkClient(cfg)
//
//	params, err := email.NewResetEmail("user@example.com", email.ResetEmailData{
//	    Username: "alice",
//	    Token:    token,
//	    TTL:      30 * time.Minute,
//	})
//	err = client.SendEmail(ctx, params)
package email
