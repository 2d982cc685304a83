package domain

// PatientSubmission 一次提交的表单数据（仅在提交期间存在，不落地）
type PatientSubmission struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Email       string
	Files       []UploadFile
}

// UploadFile 上传的账单附件，保持选择顺序
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     []byte
}

// TotalSize 附件总字节数
func (s *PatientSubmission) TotalSize() int64 {
	var total int64
	for _, f := range s.Files {
		total += f.Size
	}
	return total
}
