package contacts

import "context"

// OpenApp brings the Contacts application to the front.
func (s *Service) OpenApp(ctx context.Context) MutationResult {
	if err := s.launcher.Launch(ctx, s.appName); err != nil {
		return failed(err)
	}
	return MutationResult{Success: true}
}

// OpenContact activates the application with the given contact selected.
func (s *Service) OpenContact(ctx context.Context, id string) MutationResult {
	return s.mutate(ctx, openContactScript(s.appName, id))
}
