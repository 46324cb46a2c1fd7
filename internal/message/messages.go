package message

import "golang.org/x/text/language"

const (
	OrganizationNotFound     = "organization.not.found"
	OrganizationCodeExists   = "organization.code.exists"
	ParentNotFound           = "parent.not.found"
	OrganizationCycle        = "organization.cycle"
	UserNotFound             = "user.not.found"
	UserExists               = "user.exists"
	UsersNotInOrganization   = "users.not.in.organization"
	UserNotInOrganization    = "user.not.in.organization"
	MembershipInactive       = "membership.inactive"
	TitleNotFound            = "title.not.found"
	DefaultTitleMissing      = "title.default.missing"
	CategoryNotFound         = "category.not.found"
	CategoryExists           = "category.exists"
	CategoryNameNotFound     = "category.name.not.found"
	TaskNotFound             = "task.not.found"
	TaskActionNotAllowed     = "task.action.not.allowed"
	CommentNotFound          = "comment.not.found"
	EnumNotFound             = "enum.not.found"
	ValidationFailed         = "validation.failed"
	Retrieved                = "retrieved"
	Created                  = "created"
	Updated                  = "updated"
	Deleted                  = "deleted"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		OrganizationNotFound:   "Organization not found with id %v",
		OrganizationCodeExists: "Organization code %v already exists",
		ParentNotFound:         "Parent organization not found with id %v",
		OrganizationCycle:      "Organization %v cannot be placed under itself or its descendants",
		UserNotFound:           "User not found with id %v",
		UserExists:             "User with username or email already exists",
		UsersNotInOrganization: "None of the given users are active members of the organization",
		UserNotInOrganization:  "User %v is not a member of organization %v",
		MembershipInactive:     "User is inactive in this organization",
		TitleNotFound:          "Title not found: %v",
		DefaultTitleMissing:    "Default title STAFF not found",
		CategoryNotFound:       "Category not found with id %v",
		CategoryExists:         "Category %v/%v already exists",
		CategoryNameNotFound:   "Category %v/%v not found",
		TaskNotFound:           "Task not found with id %v",
		TaskActionNotAllowed:   "Action %v is not allowed for a task in status %v",
		CommentNotFound:        "Comment not found with id %v",
		EnumNotFound:           "Unknown enum %v",
		ValidationFailed:       "Validation failed",
		Retrieved:              "Retrieved successfully",
		Created:                "Created successfully",
		Updated:                "Updated successfully",
		Deleted:                "Deleted successfully",
	},
	language.Vietnamese: {
		OrganizationNotFound:   "Không tìm thấy tổ chức với id %v",
		OrganizationCodeExists: "Mã tổ chức %v đã tồn tại",
		ParentNotFound:         "Không tìm thấy tổ chức cha với id %v",
		OrganizationCycle:      "Không thể đặt tổ chức %v dưới chính nó hoặc tổ chức con của nó",
		UserNotFound:           "Không tìm thấy người dùng với id %v",
		UserExists:             "Tên đăng nhập hoặc email đã tồn tại",
		UsersNotInOrganization: "Không có người dùng nào đang hoạt động trong tổ chức",
		UserNotInOrganization:  "Người dùng %v không thuộc tổ chức %v",
		MembershipInactive:     "Người dùng không còn hoạt động trong tổ chức này",
		TitleNotFound:          "Không tìm thấy chức danh: %v",
		DefaultTitleMissing:    "Không tìm thấy chức danh mặc định STAFF",
		CategoryNotFound:       "Không tìm thấy danh mục với id %v",
		CategoryExists:         "Danh mục %v/%v đã tồn tại",
		CategoryNameNotFound:   "Không tìm thấy danh mục %v/%v",
		TaskNotFound:           "Không tìm thấy công việc với id %v",
		TaskActionNotAllowed:   "Không thể thực hiện %v khi công việc ở trạng thái %v",
		CommentNotFound:        "Không tìm thấy bình luận với id %v",
		EnumNotFound:           "Không có danh mục liệt kê %v",
		ValidationFailed:       "Dữ liệu không hợp lệ",
		Retrieved:              "Lấy dữ liệu thành công",
		Created:                "Tạo mới thành công",
		Updated:                "Cập nhật thành công",
		Deleted:                "Xóa thành công",
	},
}
