// Package authz answers "may this user perform this action on this entity?"
// for projects, contributors, tasks, comments and assignments.
//
// Every predicate is a pure function over entities the caller has already
// loaded; the package never touches storage. The acting user is identified by
// id only; there is no ambient session state. Membership is represented by
// the actor's Contributor row for the relevant project, or nil when the actor
// has none. The project author is implicitly a superset of an editor
// contributor for every check and never holds a Contributor row.
//
// Missing parent entities are the caller's problem: absence must be handled
// as not-found before consulting the policy, so denial never masks a missing
// row.
package authz

import "github.com/tasklyhq/project-management-api/internal/models"

// CanViewProject reports whether the actor may view the project, its
// contributor list, its tasks or its comments: the author or any contributor,
// editor or not.
func CanViewProject(actorID uint64, project *models.Project, membership *models.Contributor) bool {
	return project.AuthorID == actorID || membership != nil
}

// CanManageProject reports whether the actor may update or delete the project
// or manage its contributors. Author only; is_editor grants no rights here.
func CanManageProject(actorID uint64, project *models.Project) bool {
	return project.AuthorID == actorID
}

// CanEditTasks reports whether the actor may create, update or delete tasks
// in the project: the author, or a contributor with is_editor set.
func CanEditTasks(actorID uint64, project *models.Project, membership *models.Contributor) bool {
	if project.AuthorID == actorID {
		return true
	}
	return membership != nil && membership.IsEditor
}

// CanCreateComment reports whether the actor may comment on a task in the
// project. Any contributor may comment, editor or not.
func CanCreateComment(actorID uint64, project *models.Project, membership *models.Contributor) bool {
	return CanViewProject(actorID, project, membership)
}

// CanModifyComment reports whether the actor may update or delete the
// comment: the project author or the comment's own author. Other
// contributors, editors included, may not touch it.
func CanModifyComment(actorID uint64, project *models.Project, comment *models.Comment) bool {
	return project.AuthorID == actorID || comment.AuthorID == actorID
}

// CanAssign reports whether the actor may assign a user to the task: the
// task author, the project author, or an editor contributor.
func CanAssign(actorID uint64, task *models.Task, project *models.Project, membership *models.Contributor) bool {
	if task.AuthorID == actorID {
		return true
	}
	return CanEditTasks(actorID, project, membership)
}

// CanUnassign reports whether the actor may remove the assignment. Everyone
// who may assign may unassign; additionally the assignee may remove themself.
func CanUnassign(actorID uint64, task *models.Task, project *models.Project, membership *models.Contributor, assignment *models.TaskAssignment) bool {
	if CanAssign(actorID, task, project, membership) {
		return true
	}
	return assignment.UserID == actorID
}
