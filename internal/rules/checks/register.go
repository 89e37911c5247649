// Package checks holds the compiled-in rule set.
//
// Rules are assembled once at process start. Registration order below is the
// evaluation order and the order `ghaudit rules` lists.
package checks

import "ghaudit/internal/rules"

func init() {
	rules.Register(DescriptionExists{})
	rules.Register(LicenseExists{})
	rules.Register(LicenseIsMIT{})
	rules.Register(ReadmeExists{})
	rules.Register(TopicsExist{})
	rules.Register(TopicsEnough{})
	rules.Register(IssuesEnabled{})
	rules.Register(ProjectsDisabled{})
	rules.Register(WikiDisabled{})
	rules.Register(DiscussionsDisabled{})
	rules.Register(DefaultBranchProtected{})
	rules.Register(NoForcePush{})
	rules.Register(PRRequired{})
	rules.Register(PRReviewsRequired{})
	rules.Register(EnforceAdmins{})
	rules.Register(NoBranchDeletion{})
	rules.Register(StatusChecksDefined{})
	rules.Register(DeleteBranchOnMerge{})
	rules.Register(MergeCommitEnabled{})
	rules.Register(LabelsDefined{})
}
