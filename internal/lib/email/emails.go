package email

// SendWelcomeEmail greets a newly registered account.
func (c *Client) SendWelcomeEmail(to, username string) error {
	return c.SendEmail(
		to,
		"Welcome to SkillHub!",
		TemplateWelcome,
		map[string]string{
			"Username": username,
		},
	)
}
