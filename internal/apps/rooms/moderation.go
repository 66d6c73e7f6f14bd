package rooms

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrAlreadyBlocked = errors.New("user already blocked")
	ErrSelfBlock      = errors.New("cannot block yourself")
)

var BannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"ass", "asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nude", "nudes",
	"spam", "scam", "scammer", "phishing", "malware",
}

// ModerationService screens room names and descriptions and handles the
// report/block flow for shared rooms.
type ModerationService struct {
	db                *gorm.DB
	bannedWordRegexps []*regexp.Regexp
	urlPattern        *regexp.Regexp
	emailPattern      *regexp.Regexp
	phonePattern      *regexp.Regexp
	compiled          bool
	mu                sync.RWMutex
}

func NewModerationService(db *gorm.DB) *ModerationService {
	ms := &ModerationService{db: db}
	ms.compilePatterns()
	return ms
}

func (ms *ModerationService) compilePatterns() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.compiled {
		return
	}

	ms.bannedWordRegexps = make([]*regexp.Regexp, 0, len(BannedWords))
	for _, word := range BannedWords {
		pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
		re, err := regexp.Compile(pattern)
		if err == nil {
			ms.bannedWordRegexps = append(ms.bannedWordRegexps, re)
		}
	}

	ms.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	ms.emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	ms.phonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`)
	ms.compiled = true
}

// FilterContent checks room-visible text. Returns false plus a reason
// code when the text should be rejected.
func (ms *ModerationService) FilterContent(text string) (bool, string) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if text == "" {
		return true, ""
	}
	for _, re := range ms.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if ms.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if ms.emailPattern.MatchString(text) || ms.phonePattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	return true, ""
}

func (ms *ModerationService) GetRejectionMessage(reason string) string {
	messages := map[string]string{
		"inappropriate_language":   "The room text contains inappropriate language.",
		"url_not_allowed":          "URLs and web links are not allowed.",
		"contact_info_not_allowed": "Contact information is not allowed.",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "The room text does not meet our content guidelines."
}

func (s *ModerationService) CreateReport(reporterID uuid.UUID, req *CreateReportRequest) (*Report, error) {
	validTypes := map[string]bool{"room": true, "member": true}
	if !validTypes[req.ContentType] {
		return nil, errors.New("invalid content_type: must be room or member")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, errors.New("reason is required")
	}

	report := Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		RoomID:      req.RoomID,
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Reason:      req.Reason,
		Status:      "pending",
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ModerationService) ListReports(status string, limit, offset int) ([]Report, int64, error) {
	var reports []Report
	var total int64

	query := s.db.Model(&Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *ModerationService) ActionReport(reportID uuid.UUID, req *ActionReportRequest) error {
	validStatuses := map[string]bool{"reviewed": true, "actioned": true, "dismissed": true}
	if !validStatuses[req.Status] {
		return errors.New("invalid status: must be reviewed, actioned, or dismissed")
	}

	result := s.db.Model(&Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":     req.Status,
			"admin_note": req.AdminNote,
		})
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return result.Error
}

func (s *ModerationService) BlockUser(blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrSelfBlock
	}

	var existing Block
	if err := s.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).First(&existing).Error; err == nil {
		return ErrAlreadyBlocked
	}

	block := Block{
		ID:        uuid.New(),
		BlockerID: blockerID,
		BlockedID: blockedID,
	}
	return s.db.Create(&block).Error
}

func (s *ModerationService) UnblockUser(blockerID, blockedID uuid.UUID) error {
	return s.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&Block{}).Error
}

func (s *ModerationService) GetBlockedIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var blocks []Block
	if err := s.db.Where("blocker_id = ?", userID).Find(&blocks).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(blocks))
	for i, b := range blocks {
		ids[i] = b.BlockedID
	}
	return ids, nil
}
