package intake

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// InsertSubmission writes one row into hrminfo and returns the generated id.
// Column names follow the production schema.
func (s *Store) InsertSubmission(ctx context.Context, sub Submission) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO hrminfo (
      ho_va_ten, gioi_tinh, ngay_thang_nam_sinh, hinh_thuc_cong_viec,
      ngay_bat_dau_lam_viec, hinh_thuc_lam_viec, chuc_vu, phong_ban,
      thuong_hieu, noi_lam_viec, ten_don_vi, so_dien_thoai, email,
      link_facebook, so_tai_khoan_vpbank, chu_tai_khoan_vpbank,
      chi_nhanh_vpbank, so_can_cuoc_cong_dan, dia_chi_thuong_tru,
      dia_chi_hien_tai, anh_the_nhan_vien_link, anh_cccd_mat_truoc_link,
      anh_cccd_mat_sau_link, bien_so_xe, tham_gia_nhom_rieng, cam_doan
    ) VALUES (
      $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
      $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
    )
    RETURNING id
  `,
		sub.FullName,
		sub.Gender,
		sub.DateOfBirth,
		sub.Position,
		sub.StartDate,
		sub.WorkType,
		sub.Role,
		sub.Department,
		sub.MemberOf,
		sub.WorkPlace,
		sub.UnitName,
		sub.Phone,
		sub.Email,
		sub.Facebook,
		sub.BankAccount,
		sub.BankOwner,
		sub.BankBranch,
		sub.CitizenID,
		sub.PermanentAddress,
		sub.CurrentAddress,
		sub.StaffPhotoURL,
		sub.CitizenFrontURL,
		sub.CitizenBackURL,
		sub.VehiclePlate,
		sub.JoinInternalGroup,
		sub.Confirm,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
