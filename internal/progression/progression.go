// Package progression derives read-only progress views: which videos of a
// level are locked, how much of a level is done, and what a passed exam
// leads to.
package progression

import (
	"fmt"
	"sort"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/SAP-F-2025/course-progress-service/internal/scoring"
)

// VideoLock pairs a video with its lock state for one learner.
type VideoLock struct {
	Video    models.Video
	IsLocked bool
}

// SortVideos orders videos by Order ascending, ties broken by ID.
func SortVideos(videos []models.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		if videos[i].Order != videos[j].Order {
			return videos[i].Order < videos[j].Order
		}
		return videos[i].ID < videos[j].ID
	})
}

// LockStates folds over the videos in order. The first video is always open;
// every later video is locked unless the video immediately before it is
// completed. completed holds the ids of videos the learner has finished.
func LockStates(videos []models.Video, completed map[uint]bool) []VideoLock {
	if len(videos) == 0 {
		return []VideoLock{}
	}

	ordered := make([]models.Video, len(videos))
	copy(ordered, videos)
	SortVideos(ordered)

	locks := make([]VideoLock, 0, len(ordered))
	previousDone := true
	for _, video := range ordered {
		locks = append(locks, VideoLock{Video: video, IsLocked: !previousDone})
		previousDone = completed[video.ID]
	}
	return locks
}

// LevelPercentage returns the manual override when one exists. Otherwise it
// is the share of level-attached quizzes with at least one passing attempt,
// truncated to an integer; 0 when the level has no such quizzes.
func LevelPercentage(override *models.UserLevelProgress, quizzes []models.Quiz, passed map[uint]bool) int {
	if override != nil {
		return override.Progress
	}

	completed := 0
	for _, quiz := range quizzes {
		if passed[quiz.ID] {
			completed++
		}
	}
	return scoring.Percentage(completed, len(quizzes))
}

// NextLevel picks the level with the smallest order strictly greater than
// current's, among levels of the same course.
func NextLevel(levels []models.CourseLevel, current models.CourseLevel) (models.CourseLevel, bool) {
	var next models.CourseLevel
	found := false
	for _, level := range levels {
		if level.CourseID != current.CourseID || level.Order <= current.Order {
			continue
		}
		if !found || level.Order < next.Order {
			next, found = level, true
		}
	}
	return next, found
}

// ExamMessage describes what a graded exam leads to. next is nil when the
// level was the last of its course.
func ExamMessage(passed bool, next *models.CourseLevel) string {
	switch {
	case !passed:
		return "Exam failed."
	case next != nil:
		return fmt.Sprintf("Exam passed. Next level unlocked: %s.", next.Name)
	default:
		return "Exam passed. You have completed the course."
	}
}
